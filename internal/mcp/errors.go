package mcp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rpggio/projectadmin/internal/apiclient"
	"github.com/rpggio/projectadmin/internal/domain/project"
)

// APIError represents an MCP tool error payload.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps validation and API errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, errMissingID),
		errors.Is(err, project.ErrNameRequired),
		errors.Is(err, project.ErrManagerRequired),
		errors.Is(err, project.ErrInvalidDeadline),
		errors.Is(err, project.ErrInvalidStatus):
		return &APIError{Code: "VALIDATION", Message: err.Error(), RecoveryHint: "Fix the argument and call again"}
	case errors.Is(err, apiclient.ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: "not logged in or session expired", RecoveryHint: "Run `projectadmin login`, then retry"}
	}

	switch apiclient.StatusCode(err) {
	case 0:
		return &APIError{Code: "UNAVAILABLE", Message: err.Error(), RecoveryHint: "Check that the project API is reachable"}
	case http.StatusForbidden:
		return &APIError{Code: "FORBIDDEN", Message: "your role may not perform this action"}
	case http.StatusNotFound:
		return &APIError{Code: "NOT_FOUND", Message: "project not found", RecoveryHint: "List projects to find a valid id"}
	case http.StatusBadRequest:
		return &APIError{Code: "REJECTED", Message: err.Error()}
	default:
		return &APIError{Code: "API_ERROR", Message: err.Error()}
	}
}

var errMissingID = errors.New("id is required")
