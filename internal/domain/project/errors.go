package project

import "errors"

var (
	// ErrNameRequired indicates the project name is empty.
	ErrNameRequired = errors.New("project name is required")
	// ErrManagerRequired indicates no manager was selected.
	ErrManagerRequired = errors.New("manager is required")
	// ErrInvalidDeadline indicates the deadline is not a YYYY-MM-DD date.
	ErrInvalidDeadline = errors.New("invalid deadline date")
	// ErrInvalidStatus indicates an unknown project status.
	ErrInvalidStatus = errors.New("invalid project status")
)
