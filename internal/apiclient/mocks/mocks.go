package mocks

import (
	"context"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/stretchr/testify/mock"
)

// API is a mock for apiclient.API.
type API struct {
	mock.Mock
}

func (m *API) Teams(ctx context.Context) ([]project.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Team), args.Error(1)
}

func (m *API) Managers(ctx context.Context) ([]project.Manager, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Manager), args.Error(1)
}

func (m *API) Projects(ctx context.Context, filter project.Filter, page int) (project.Page, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(project.Page), args.Error(1)
}

func (m *API) CreateProject(ctx context.Context, req project.WriteRequest) (*project.Project, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *API) UpdateProject(ctx context.Context, id string, req project.WriteRequest) (*project.Project, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *API) DeleteProject(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *API) Login(ctx context.Context, email, password string) (session.Credentials, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(session.Credentials), args.Error(1)
}
