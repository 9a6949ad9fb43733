package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/domain/session"
)

// Teams lists every team.
func (c *Client) Teams(ctx context.Context) ([]project.Team, error) {
	var teams []project.Team
	if err := c.Get(ctx, "/teams", nil, &teams); err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	return teams, nil
}

// Managers lists every user holding the manager role.
func (c *Client) Managers(ctx context.Context) ([]project.Manager, error) {
	var managers []project.Manager
	if err := c.Get(ctx, "/users/managers", nil, &managers); err != nil {
		return nil, fmt.Errorf("fetch managers: %w", err)
	}
	return managers, nil
}

// Projects fetches one page of projects matching filter.
func (c *Client) Projects(ctx context.Context, filter project.Filter, page int) (project.Page, error) {
	var result project.Page
	if err := c.Get(ctx, "/projects", filter.Query(page, project.PageSize), &result); err != nil {
		return project.Page{}, fmt.Errorf("fetch projects: %w", err)
	}
	return result, nil
}

// CreateProject creates a project and returns the stored copy.
func (c *Client) CreateProject(ctx context.Context, req project.WriteRequest) (*project.Project, error) {
	var created project.Project
	if err := c.Post(ctx, "/projects", req, &created); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &created, nil
}

// UpdateProject replaces the writable fields of a project.
func (c *Client) UpdateProject(ctx context.Context, id string, req project.WriteRequest) (*project.Project, error) {
	var updated project.Project
	if err := c.Put(ctx, "/projects/"+url.PathEscape(id), req, &updated); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &updated, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.Delete(ctx, "/projects/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges an email and password for credentials.
func (c *Client) Login(ctx context.Context, email, password string) (session.Credentials, error) {
	var creds session.Credentials
	if err := c.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &creds); err != nil {
		return session.Credentials{}, fmt.Errorf("login: %w", err)
	}
	return creds, nil
}
