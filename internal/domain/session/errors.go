package session

import "errors"

var (
	// ErrNoCredentials indicates nothing is stored yet.
	ErrNoCredentials = errors.New("no stored credentials")
	// ErrInvalidInput indicates credentials missing a token.
	ErrInvalidInput = errors.New("invalid session input")
)
