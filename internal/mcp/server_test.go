package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/projectadmin/internal/apiclient"
	"github.com/rpggio/projectadmin/internal/apiclient/mocks"
	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/mcp"
)

func connect(t *testing.T, api apiclient.API) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	server := mcp.NewServer(mcp.Config{API: api})
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Wait()
	})
	return clientSession
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text, result.IsError
}

func decodeError(t *testing.T, text string) mcp.APIError {
	t.Helper()
	var apiErr mcp.APIError
	require.NoError(t, json.Unmarshal([]byte(text), &apiErr))
	return apiErr
}

func TestServer_ListsToolsAndDocs(t *testing.T) {
	cs := connect(t, &mocks.API{})
	ctx := context.Background()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_teams", "list_managers", "list_projects",
		"create_project", "update_project", "delete_project",
	}, names)

	doc, err := cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "projectadmin://docs/filters"})
	require.NoError(t, err)
	require.Len(t, doc.Contents, 1)
	require.Contains(t, doc.Contents[0].Text, "Pages hold 12 projects")
}

func TestListTeams(t *testing.T) {
	api := &mocks.API{}
	api.On("Teams", mock.Anything).Return([]project.Team{{ID: "t1", Name: "Platform"}}, nil)
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "list_teams", map[string]any{})
	require.False(t, isErr)

	var teams []project.Team
	require.NoError(t, json.Unmarshal([]byte(text), &teams))
	require.Equal(t, []project.Team{{ID: "t1", Name: "Platform"}}, teams)
}

func TestListProjects_PassesFilterAndReportsNextPage(t *testing.T) {
	api := &mocks.API{}
	projects := make([]project.Project, project.PageSize)
	for i := range projects {
		projects[i] = project.Project{ID: string(rune('a' + i)), Name: "P", Status: project.StatusOnHold}
	}
	wantFilter := project.Filter{Search: "api", Status: project.StatusOnHold, TeamID: "t1", To: "2025-12-31"}
	api.On("Projects", mock.Anything, wantFilter, 2).
		Return(project.Page{Projects: projects, Summary: project.Summary{Total: 30, OnHold: 30}}, nil)
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "list_projects", map[string]any{
		"search": "api",
		"status": "On Hold",
		"team":   "t1",
		"to":     "2025-12-31",
		"page":   2,
	})
	require.False(t, isErr, text)

	var resp mcp.ListProjectsResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.Equal(t, 2, resp.Page)
	require.True(t, resp.HasNext)
	require.Len(t, resp.Projects, project.PageSize)
	require.Equal(t, 30, resp.Summary.Total)
	api.AssertExpectations(t)
}

func TestListProjects_DefaultsToFirstPage(t *testing.T) {
	api := &mocks.API{}
	api.On("Projects", mock.Anything, project.Filter{}, 1).Return(project.Page{}, nil)
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "list_projects", map[string]any{})
	require.False(t, isErr, text)

	var resp mcp.ListProjectsResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.Equal(t, 1, resp.Page)
	require.False(t, resp.HasNext)
}

func TestListProjects_RejectsBadInputWithoutCallingAPI(t *testing.T) {
	api := &mocks.API{}
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "list_projects", map[string]any{"status": "Archived"})
	require.True(t, isErr)
	require.Equal(t, "VALIDATION", decodeError(t, text).Code)

	text, isErr = callTool(t, cs, "list_projects", map[string]any{"from": "03/01/2025"})
	require.True(t, isErr)
	require.Equal(t, "VALIDATION", decodeError(t, text).Code)

	api.AssertNotCalled(t, "Projects", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProject(t *testing.T) {
	api := &mocks.API{}
	api.On("CreateProject", mock.Anything, mock.MatchedBy(func(req project.WriteRequest) bool {
		return req.Name == "Apollo" &&
			req.ManagerID == "m1" &&
			req.TeamID == nil &&
			req.Status == project.StatusInProgress &&
			req.Deadline != nil && req.Deadline.Format(project.DateLayout) == "2025-03-01"
	})).Return(&project.Project{ID: "p1", Name: "Apollo", Status: project.StatusInProgress}, nil)
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "create_project", map[string]any{
		"name":       " Apollo ",
		"manager_id": "m1",
		"deadline":   "2025-03-01",
	})
	require.False(t, isErr, text)

	var created project.Project
	require.NoError(t, json.Unmarshal([]byte(text), &created))
	require.Equal(t, "p1", created.ID)
	api.AssertExpectations(t)
}

func TestCreateProject_ValidationFailsBeforeRequest(t *testing.T) {
	api := &mocks.API{}
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "create_project", map[string]any{"name": "  ", "manager_id": "m1"})
	require.True(t, isErr)
	apiErr := decodeError(t, text)
	require.Equal(t, "VALIDATION", apiErr.Code)
	require.Equal(t, project.ErrNameRequired.Error(), apiErr.Message)

	text, isErr = callTool(t, cs, "create_project", map[string]any{"name": "Apollo", "manager_id": ""})
	require.True(t, isErr)
	require.Equal(t, project.ErrManagerRequired.Error(), decodeError(t, text).Message)

	api.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
}

func TestUpdateProject(t *testing.T) {
	api := &mocks.API{}
	api.On("UpdateProject", mock.Anything, "p1", mock.MatchedBy(func(req project.WriteRequest) bool {
		return req.Status == project.StatusCompleted && req.TeamID != nil && *req.TeamID == "t2"
	})).Return(&project.Project{ID: "p1", Status: project.StatusCompleted}, nil)
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "update_project", map[string]any{
		"id":         "p1",
		"name":       "Apollo",
		"manager_id": "m1",
		"team_id":    "t2",
		"status":     "Completed",
	})
	require.False(t, isErr, text)
	api.AssertExpectations(t)
}

func TestDeleteProject(t *testing.T) {
	api := &mocks.API{}
	api.On("DeleteProject", mock.Anything, "p1").Return(nil)
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "delete_project", map[string]any{"id": "p1"})
	require.False(t, isErr, text)

	var resp mcp.DeleteProjectResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.Equal(t, mcp.DeleteProjectResponse{ID: "p1", Deleted: true}, resp)
}

func TestDeleteProject_Forbidden(t *testing.T) {
	api := &mocks.API{}
	api.On("DeleteProject", mock.Anything, "p1").
		Return(&apiclient.HTTPError{Method: http.MethodDelete, Path: "/projects/p1", StatusCode: http.StatusForbidden})
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "delete_project", map[string]any{"id": "p1"})
	require.True(t, isErr)
	require.Equal(t, "FORBIDDEN", decodeError(t, text).Code)
}

func TestTools_UnauthorizedSuggestsLogin(t *testing.T) {
	api := &mocks.API{}
	api.On("Managers", mock.Anything).
		Return(nil, &apiclient.HTTPError{Method: http.MethodGet, Path: "/users/managers", StatusCode: http.StatusUnauthorized})
	cs := connect(t, api)

	text, isErr := callTool(t, cs, "list_managers", map[string]any{})
	require.True(t, isErr)
	apiErr := decodeError(t, text)
	require.Equal(t, "UNAUTHORIZED", apiErr.Code)
	require.Contains(t, apiErr.RecoveryHint, "projectadmin login")
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"deadline", project.ErrInvalidDeadline, "VALIDATION"},
		{"wrapped status", errors.Join(errors.New("ctx"), project.ErrInvalidStatus), "VALIDATION"},
		{"not found", &apiclient.HTTPError{StatusCode: http.StatusNotFound}, "NOT_FOUND"},
		{"bad request", &apiclient.HTTPError{StatusCode: http.StatusBadRequest}, "REJECTED"},
		{"server", &apiclient.HTTPError{StatusCode: http.StatusBadGateway}, "API_ERROR"},
		{"transport", errors.New("connection refused"), "UNAVAILABLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, mcp.MapError(tt.err).Code)
		})
	}
	require.Nil(t, mcp.MapError(nil))
}
