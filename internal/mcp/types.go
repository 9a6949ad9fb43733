package mcp

import (
	"github.com/rpggio/projectadmin/internal/domain/project"
)

type NoParams struct{}

type ListProjectsParams struct {
	Search    string `json:"search,omitempty" jsonschema:"case-insensitive substring of name or description"`
	Status    string `json:"status,omitempty" jsonschema:"In Progress, Completed or On Hold"`
	TeamID    string `json:"team,omitempty" jsonschema:"team id from list_teams"`
	ManagerID string `json:"manager,omitempty" jsonschema:"manager id from list_managers"`
	From      string `json:"from,omitempty" jsonschema:"earliest deadline, YYYY-MM-DD"`
	To        string `json:"to,omitempty" jsonschema:"latest deadline, YYYY-MM-DD, inclusive"`
	Page      int    `json:"page,omitempty" jsonschema:"page number starting at 1"`
}

type ProjectParams struct {
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description,omitempty"`
	TeamID      string `json:"team_id,omitempty" jsonschema:"team id from list_teams"`
	ManagerID   string `json:"manager_id" jsonschema:"manager id from list_managers"`
	Status      string `json:"status,omitempty" jsonschema:"In Progress (default), Completed or On Hold"`
	Deadline    string `json:"deadline,omitempty" jsonschema:"YYYY-MM-DD"`
}

type UpdateProjectParams struct {
	ID          string `json:"id" jsonschema:"project id"`
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description,omitempty"`
	TeamID      string `json:"team_id,omitempty" jsonschema:"team id, empty clears the team"`
	ManagerID   string `json:"manager_id" jsonschema:"manager id from list_managers"`
	Status      string `json:"status,omitempty" jsonschema:"In Progress (default), Completed or On Hold"`
	Deadline    string `json:"deadline,omitempty" jsonschema:"YYYY-MM-DD, empty clears the deadline"`
}

type DeleteProjectParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type ListProjectsResponse struct {
	Page     int               `json:"page"`
	HasNext  bool              `json:"has_next"`
	Projects []project.Project `json:"projects"`
	Summary  project.Summary   `json:"summary"`
}

type DeleteProjectResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (p ProjectParams) draft() project.Draft {
	return project.Draft{
		Name:        p.Name,
		Description: p.Description,
		TeamID:      p.TeamID,
		ManagerID:   p.ManagerID,
		Status:      project.Status(p.Status),
		Deadline:    p.Deadline,
	}
}

func (p UpdateProjectParams) draft() project.Draft {
	return ProjectParams{
		Name:        p.Name,
		Description: p.Description,
		TeamID:      p.TeamID,
		ManagerID:   p.ManagerID,
		Status:      p.Status,
		Deadline:    p.Deadline,
	}.draft()
}
