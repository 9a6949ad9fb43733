package projectform

import (
	"github.com/rpggio/projectadmin/internal/domain/project"
)

// Preview is the read-only summary shown beside the form.
type Preview struct {
	Name        string
	Description string
	Team        string
	Manager     string
	Status      project.Status
	Deadline    string
}

// Preview derives the summary from the current draft and option sets.
func (c *Controller) Preview() Preview {
	s := c.Snapshot()
	return BuildPreview(s.Draft, s.Teams, s.Managers)
}

// BuildPreview resolves team and manager names and formats the deadline.
func BuildPreview(d project.Draft, teams []project.Team, managers []project.Manager) Preview {
	p := Preview{
		Name:        d.Name,
		Description: d.Description,
		Team:        "No team",
		Manager:     "Not assigned",
		Status:      d.Status,
	}
	for _, t := range teams {
		if t.ID == d.TeamID && d.TeamID != "" {
			p.Team = t.Name
			break
		}
	}
	for _, m := range managers {
		if m.ID == d.ManagerID && d.ManagerID != "" {
			p.Manager = m.Name
			break
		}
	}
	if p.Status == "" {
		p.Status = project.StatusInProgress
	}
	deadline, err := project.ParseDeadline(d.Deadline)
	if err != nil {
		deadline = nil
	}
	p.Deadline = project.FormatDeadline(deadline)
	return p
}
