package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/projectadmin/internal/apiclient"
	"github.com/rpggio/projectadmin/internal/domain/project"
)

type toolHandlers struct {
	api    apiclient.API
	logger *slog.Logger
}

func registerTools(server *sdkmcp.Server, api apiclient.API, logger *slog.Logger) {
	h := &toolHandlers{api: api, logger: logger}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_teams",
		Description: "List teams a project can belong to",
	}, h.listTeams)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_managers",
		Description: "List users with the manager role",
	}, h.listManagers)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List one page of projects matching the filters, with summary counts for the filtered set",
	}, h.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a project. name and manager_id are required",
	}, h.createProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Replace the fields of an existing project",
	}, h.updateProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Permanently delete a project",
	}, h.deleteProject)
}

func (h *toolHandlers) listTeams(ctx context.Context, _ *sdkmcp.CallToolRequest, _ NoParams) (*sdkmcp.CallToolResult, any, error) {
	teams, err := h.api.Teams(ctx)
	if err != nil {
		return h.errorResult("list_teams", err)
	}
	return jsonResult(teams)
}

func (h *toolHandlers) listManagers(ctx context.Context, _ *sdkmcp.CallToolRequest, _ NoParams) (*sdkmcp.CallToolResult, any, error) {
	managers, err := h.api.Managers(ctx)
	if err != nil {
		return h.errorResult("list_managers", err)
	}
	return jsonResult(managers)
}

func (h *toolHandlers) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListProjectsParams) (*sdkmcp.CallToolResult, any, error) {
	status := project.Status(strings.TrimSpace(in.Status))
	if status != "" && !status.Valid() {
		return h.errorResult("list_projects", project.ErrInvalidStatus)
	}
	for _, bound := range []string{in.From, in.To} {
		if _, err := project.ParseDeadline(bound); err != nil {
			return h.errorResult("list_projects", err)
		}
	}

	pageNum := in.Page
	if pageNum < 1 {
		pageNum = 1
	}
	filter := project.Filter{
		Search:    in.Search,
		Status:    status,
		TeamID:    in.TeamID,
		ManagerID: in.ManagerID,
		From:      in.From,
		To:        in.To,
	}

	page, err := h.api.Projects(ctx, filter, pageNum)
	if err != nil {
		return h.errorResult("list_projects", err)
	}
	return jsonResult(ListProjectsResponse{
		Page:     pageNum,
		HasNext:  len(page.Projects) >= project.PageSize,
		Projects: page.Projects,
		Summary:  page.Summary,
	})
}

func (h *toolHandlers) createProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectParams) (*sdkmcp.CallToolResult, any, error) {
	req, err := in.draft().Request()
	if err != nil {
		return h.errorResult("create_project", err)
	}
	created, err := h.api.CreateProject(ctx, req)
	if err != nil {
		return h.errorResult("create_project", err)
	}
	return jsonResult(created)
}

func (h *toolHandlers) updateProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateProjectParams) (*sdkmcp.CallToolResult, any, error) {
	if strings.TrimSpace(in.ID) == "" {
		return h.errorResult("update_project", errMissingID)
	}
	req, err := in.draft().Request()
	if err != nil {
		return h.errorResult("update_project", err)
	}
	updated, err := h.api.UpdateProject(ctx, in.ID, req)
	if err != nil {
		return h.errorResult("update_project", err)
	}
	return jsonResult(updated)
}

func (h *toolHandlers) deleteProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteProjectParams) (*sdkmcp.CallToolResult, any, error) {
	if strings.TrimSpace(in.ID) == "" {
		return h.errorResult("delete_project", errMissingID)
	}
	if err := h.api.DeleteProject(ctx, in.ID); err != nil {
		return h.errorResult("delete_project", err)
	}
	return jsonResult(DeleteProjectResponse{ID: in.ID, Deleted: true})
}

func (h *toolHandlers) errorResult(tool string, err error) (*sdkmcp.CallToolResult, any, error) {
	apiErr := MapError(err)
	if h.logger != nil {
		h.logger.Warn("tool call failed", "tool", tool, "code", apiErr.Code, "error", err)
	}
	data, merr := json.Marshal(apiErr)
	if merr != nil {
		return nil, nil, fmt.Errorf("failed to encode tool error: %w", merr)
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
