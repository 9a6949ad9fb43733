package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/repository"
	"github.com/rpggio/projectadmin/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	projects *mocks.ProjectRepository
	teams    *mocks.TeamRepository
	users    *mocks.UserRepository
	server   *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		projects: &mocks.ProjectRepository{},
		teams:    &mocks.TeamRepository{},
		users:    &mocks.UserRepository{},
	}
	f.users.On("ResolveToken", mock.Anything, "admin-token").Return(&session.User{ID: "u1", Name: "Ada", Role: session.RoleAdmin}, nil).Maybe()
	f.users.On("ResolveToken", mock.Anything, "member-token").Return(&session.User{ID: "u2", Name: "Bob", Role: session.RoleMember}, nil).Maybe()
	f.users.On("ResolveToken", mock.Anything, mock.Anything).Return(nil, repository.ErrInvalidCredentials).Maybe()

	f.server = httptest.NewServer(NewServer(Deps{Projects: f.projects, Teams: f.teams, Users: f.users}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHTTPServer_Health(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_RequiresToken(t *testing.T) {
	f := newFixture(t)

	require.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/teams", "", nil).StatusCode)
	require.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/projects", "expired", nil).StatusCode)
}

func TestHTTPServer_Login(t *testing.T) {
	f := newFixture(t)
	f.users.On("Authenticate", mock.Anything, "ada@example.com", "pw").Return(&session.User{ID: "u1", Name: "Ada", Role: session.RoleAdmin}, nil)
	f.users.On("Authenticate", mock.Anything, "ada@example.com", "bad").Return(nil, repository.ErrInvalidCredentials)
	f.users.On("IssueToken", mock.Anything, "u1").Return("fresh", nil)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "Ada@Example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var creds session.Credentials
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&creds))
	require.Equal(t, session.Credentials{Token: "fresh", Username: "Ada", Role: session.RoleAdmin}, creds)

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ada@example.com", "password": "bad"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPServer_Managers(t *testing.T) {
	f := newFixture(t)
	f.users.On("ListByRole", mock.Anything, session.RoleManager).Return([]session.User{{ID: "m1", Name: "Grace", Email: "g@example.com", Role: session.RoleManager}}, nil)

	resp := f.do(t, http.MethodGet, "/api/users/managers", "member-token", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var managers []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&managers))
	require.Equal(t, []map[string]any{{"_id": "m1", "name": "Grace"}}, managers)
}

func TestHTTPServer_ListProjectsParsesQuery(t *testing.T) {
	f := newFixture(t)
	f.projects.On("List", mock.Anything, repository.ListProjectsOptions{
		Filter: project.Filter{Search: "apo", Status: project.StatusOnHold, TeamID: "t1", From: "2025-01-01"},
		Limit:  12,
		Offset: 24,
	}).Return(project.Page{Projects: []project.Project{}, Summary: project.Summary{Total: 25}}, nil)

	resp := f.do(t, http.MethodGet, "/api/projects?page=3&limit=12&search=apo&status=On+Hold&team=t1&from=2025-01-01", "admin-token", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page project.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Equal(t, 25, page.Summary.Total)
	f.projects.AssertExpectations(t)
}

func TestHTTPServer_ListProjectsRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/projects?page=0", "admin-token", nil).StatusCode)
	require.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/projects?status=Archived", "admin-token", nil).StatusCode)
}

func TestHTTPServer_CreateProject(t *testing.T) {
	f := newFixture(t)
	deadline := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var createdID string
	f.projects.On("Create", mock.Anything, mock.MatchedBy(func(p *project.Project) bool {
		return p.Name == "Apollo" && p.Manager.ID == "m1" && p.Team == nil &&
			p.Status == project.StatusInProgress && p.Deadline.Equal(deadline)
	})).Run(func(args mock.Arguments) {
		createdID = args.Get(1).(*project.Project).ID
	}).Return(nil)
	f.projects.On("Get", mock.Anything, mock.Anything).Return(&project.Project{ID: "generated", Name: "Apollo"}, nil)

	resp := f.do(t, http.MethodPost, "/api/projects", "admin-token", map[string]any{
		"project_name": " Apollo ",
		"manager_id":   "m1",
		"team_id":      nil,
		"deadline":     "2025-03-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, createdID)
	f.projects.AssertExpectations(t)
}

func TestHTTPServer_CreateProjectValidates(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/projects", "admin-token", map[string]any{"project_name": "", "manager_id": "m1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/projects", "admin-token", map[string]any{"project_name": "x"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	f.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHTTPServer_MemberCannotWrite(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodDelete, "/api/projects/p1", "member-token", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	f.projects.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestHTTPServer_UpdateAndDeleteErrors(t *testing.T) {
	f := newFixture(t)
	f.projects.On("Update", mock.Anything, mock.Anything).Return(repository.ErrForeignKeyViolation)
	f.projects.On("Delete", mock.Anything, "missing").Return(repository.ErrNotFound)
	f.projects.On("Delete", mock.Anything, "broken").Return(errors.New("disk"))

	resp := f.do(t, http.MethodPut, "/api/projects/p1", "admin-token", map[string]any{"project_name": "x", "manager_id": "ghost"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	require.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/api/projects/missing", "admin-token", nil).StatusCode)
	require.Equal(t, http.StatusInternalServerError, f.do(t, http.MethodDelete, "/api/projects/broken", "admin-token", nil).StatusCode)
}
