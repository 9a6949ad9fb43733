package project

import (
	"strings"
	"time"
)

// DateLayout is the layout of date-only inputs (deadline, filter bounds).
const DateLayout = "2006-01-02"

// Draft holds the raw form values of a project being created or edited.
type Draft struct {
	Name        string
	Description string
	TeamID      string
	ManagerID   string
	Status      Status
	Deadline    string
}

// WriteRequest is the body of POST /projects and PUT /projects/{id}.
type WriteRequest struct {
	Name        string     `json:"project_name"`
	Description string     `json:"description"`
	TeamID      *string    `json:"team_id"`
	ManagerID   string     `json:"manager_id"`
	Status      Status     `json:"status"`
	Deadline    *time.Time `json:"deadline"`
}

// Validate checks the fields required before any request is sent.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(d.ManagerID) == "" {
		return ErrManagerRequired
	}
	if d.Status != "" && !d.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Request validates the draft and converts it into a wire request.
func (d Draft) Request() (WriteRequest, error) {
	if err := d.Validate(); err != nil {
		return WriteRequest{}, err
	}
	deadline, err := ParseDeadline(d.Deadline)
	if err != nil {
		return WriteRequest{}, err
	}

	status := d.Status
	if status == "" {
		status = StatusInProgress
	}

	req := WriteRequest{
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		ManagerID:   d.ManagerID,
		Status:      status,
		Deadline:    deadline,
	}
	if teamID := strings.TrimSpace(d.TeamID); teamID != "" {
		req.TeamID = &teamID
	}
	return req, nil
}

// DraftFrom prefills a draft from an existing project.
func DraftFrom(p Project) Draft {
	d := Draft{
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
	}
	if p.Team != nil {
		d.TeamID = p.Team.ID
	}
	if p.Manager != nil {
		d.ManagerID = p.Manager.ID
	}
	if p.Deadline != nil {
		d.Deadline = p.Deadline.UTC().Format(DateLayout)
	}
	return d
}

// ParseDeadline turns a date-only input into a UTC midnight timestamp.
// An empty input yields nil.
func ParseDeadline(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return nil, ErrInvalidDeadline
	}
	return &t, nil
}

// FormatDeadline renders a deadline for display.
func FormatDeadline(t *time.Time) string {
	if t == nil {
		return "No deadline"
	}
	return t.UTC().Format("Jan 2, 2006")
}
