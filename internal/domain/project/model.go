package project

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusOnHold     Status = "On Hold"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusInProgress, StatusCompleted, StatusOnHold}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Team is a read-only team reference.
type Team struct {
	ID   string `json:"_id"`
	Name string `json:"team_name"`
}

// UnmarshalJSON accepts either a bare id string or a populated team object.
func (t *Team) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*t = Team{ID: id}
		return nil
	}
	type plain Team
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Team(p)
	return nil
}

// Manager is a user holding the manager role.
type Manager struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts either a bare id string or a populated user object.
func (m *Manager) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*m = Manager{ID: id}
		return nil
	}
	type plain Manager
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = Manager(p)
	return nil
}

// Project is the client's transient copy of a remote project.
type Project struct {
	ID          string     `json:"_id"`
	Name        string     `json:"project_name"`
	Description string     `json:"description"`
	Team        *Team      `json:"team_id,omitempty"`
	Manager     *Manager   `json:"manager_id,omitempty"`
	Status      Status     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// Summary holds server-computed counts over the filtered project set.
type Summary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	OnHold     int `json:"onHold"`
}

// Page is one page of the filtered project collection.
type Page struct {
	Projects []Project `json:"projects"`
	Summary  Summary   `json:"summary"`
}
