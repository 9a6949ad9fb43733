package transport

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/repository"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.users.Authenticate(r.Context(), email, req.Password)
	if errors.Is(err, repository.ErrInvalidCredentials) {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.internalError(w, "authenticate", err)
		return
	}

	token, err := s.users.IssueToken(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, session.Credentials{
		Token:    token,
		Username: user.Name,
		Role:     user.Role,
	})
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.List(r.Context())
	if err != nil {
		s.internalError(w, "list teams", err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleListManagers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListByRole(r.Context(), session.RoleManager)
	if err != nil {
		s.internalError(w, "list managers", err)
		return
	}
	managers := make([]project.Manager, 0, len(users))
	for _, u := range users {
		managers = append(managers, project.Manager{ID: u.ID, Name: u.Name})
	}
	writeJSON(w, http.StatusOK, managers)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "error", err)
	writeMessage(w, http.StatusInternalServerError, "internal error")
}
