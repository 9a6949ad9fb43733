package mocks

import (
	"context"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/repository"
	"github.com/stretchr/testify/mock"
)

// CredentialRepository is a mock for repository.CredentialRepository.
type CredentialRepository struct {
	mock.Mock
}

func (m *CredentialRepository) Load(ctx context.Context) (session.Credentials, error) {
	args := m.Called(ctx)
	return args.Get(0).(session.Credentials), args.Error(1)
}

func (m *CredentialRepository) Save(ctx context.Context, creds session.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *CredentialRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context, opts repository.ListProjectsOptions) (project.Page, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(project.Page), args.Error(1)
}

// TeamRepository is a mock for repository.TeamRepository.
type TeamRepository struct {
	mock.Mock
}

func (m *TeamRepository) Create(ctx context.Context, team *project.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *TeamRepository) Get(ctx context.Context, id string) (*project.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Team), args.Error(1)
}

func (m *TeamRepository) List(ctx context.Context) ([]project.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Team), args.Error(1)
}

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *session.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*session.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.User), args.Error(1)
}

func (m *UserRepository) ListByRole(ctx context.Context, role string) ([]session.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]session.User), args.Error(1)
}

func (m *UserRepository) Authenticate(ctx context.Context, email, password string) (*session.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.User), args.Error(1)
}

func (m *UserRepository) IssueToken(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *UserRepository) ResolveToken(ctx context.Context, token string) (*session.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.User), args.Error(1)
}
