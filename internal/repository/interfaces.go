package repository

import (
	"context"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/domain/session"
)

// CredentialRepository persists the local login state.
type CredentialRepository interface {
	Load(ctx context.Context) (session.Credentials, error)
	Save(ctx context.Context, creds session.Credentials) error
	Clear(ctx context.Context) error
}

// ProjectRepository manages project persistence behind the dev API.
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	Update(ctx context.Context, proj *project.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListProjectsOptions) (project.Page, error)
}

// ListProjectsOptions provides filtering options for listing projects.
type ListProjectsOptions struct {
	Filter project.Filter
	Limit  int
	Offset int
}

// TeamRepository manages team persistence behind the dev API.
type TeamRepository interface {
	Create(ctx context.Context, team *project.Team) error
	Get(ctx context.Context, id string) (*project.Team, error)
	List(ctx context.Context) ([]project.Team, error)
}

// UserRepository manages accounts and API tokens behind the dev API.
type UserRepository interface {
	Create(ctx context.Context, user *session.User, password string) error
	Get(ctx context.Context, id string) (*session.User, error)
	ListByRole(ctx context.Context, role string) ([]session.User, error)
	Authenticate(ctx context.Context, email, password string) (*session.User, error)
	IssueToken(ctx context.Context, userID string) (string, error)
	ResolveToken(ctx context.Context, token string) (*session.User, error)
}
