package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique name, email or id is already taken
	ErrConflict = errors.New("conflict: entity already exists")

	// ErrForeignKeyViolation is returned when a team, manager or user reference
	// points at nothing
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when a list filter cannot be parsed
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned when an email/password pair or a bearer
	// token matches no user
	ErrInvalidCredentials = errors.New("invalid credentials")
)
