package apiclient

import (
	"context"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/domain/session"
)

// API is the typed surface of the project API used by the view controllers.
type API interface {
	Teams(ctx context.Context) ([]project.Team, error)
	Managers(ctx context.Context) ([]project.Manager, error)
	Projects(ctx context.Context, filter project.Filter, page int) (project.Page, error)
	CreateProject(ctx context.Context, req project.WriteRequest) (*project.Project, error)
	UpdateProject(ctx context.Context, id string, req project.WriteRequest) (*project.Project, error)
	DeleteProject(ctx context.Context, id string) error
	Login(ctx context.Context, email, password string) (session.Credentials, error)
}

var _ API = (*Client)(nil)
