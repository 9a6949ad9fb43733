package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/repository"
)

const maxPageSize = 100

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := positiveInt(q.Get("page"), 1)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid page")
		return
	}
	limit, err := positiveInt(q.Get("limit"), project.PageSize)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid limit")
		return
	}
	limit = min(limit, maxPageSize)

	status := project.Status(q.Get("status"))
	if status != "" && !status.Valid() {
		writeMessage(w, http.StatusBadRequest, "invalid status")
		return
	}

	result, err := s.projects.List(r.Context(), repository.ListProjectsOptions{
		Filter: project.Filter{
			Search:    q.Get("search"),
			Status:    status,
			TeamID:    q.Get("team"),
			ManagerID: q.Get("manager"),
			From:      q.Get("from"),
			To:        q.Get("to"),
		},
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if errors.Is(err, repository.ErrInvalidInput) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		s.internalError(w, "get project", err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	proj, ok := s.decodeProject(w, r)
	if !ok {
		return
	}
	proj.ID = uuid.NewString()

	if err := s.projects.Create(r.Context(), proj); err != nil {
		s.writeStoreError(w, "create project", err)
		return
	}
	s.writeStored(w, r, http.StatusCreated, proj.ID)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	proj, ok := s.decodeProject(w, r)
	if !ok {
		return
	}
	proj.ID = chi.URLParam(r, "id")

	if err := s.projects.Update(r.Context(), proj); err != nil {
		s.writeStoreError(w, "update project", err)
		return
	}
	s.writeStored(w, r, http.StatusOK, proj.ID)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, "delete project", err)
		return
	}
	writeJSON(w, http.StatusOK, errorBody{Message: "project deleted"})
}

// decodeProject parses and validates a write request. It answers 400 itself.
func (s *Server) decodeProject(w http.ResponseWriter, r *http.Request) (*project.Project, bool) {
	var req project.WriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return nil, false
	}

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		writeMessage(w, http.StatusBadRequest, project.ErrNameRequired.Error())
		return nil, false
	case strings.TrimSpace(req.ManagerID) == "":
		writeMessage(w, http.StatusBadRequest, project.ErrManagerRequired.Error())
		return nil, false
	case req.Status != "" && !req.Status.Valid():
		writeMessage(w, http.StatusBadRequest, project.ErrInvalidStatus.Error())
		return nil, false
	}

	proj := &project.Project{
		Name:        name,
		Description: req.Description,
		Manager:     &project.Manager{ID: req.ManagerID},
		Status:      req.Status,
		Deadline:    req.Deadline,
	}
	if proj.Status == "" {
		proj.Status = project.StatusInProgress
	}
	if req.TeamID != nil && *req.TeamID != "" {
		proj.Team = &project.Team{ID: *req.TeamID}
	}
	return proj, true
}

func (s *Server) writeStored(w http.ResponseWriter, r *http.Request, status int, id string) {
	stored, err := s.projects.Get(r.Context(), id)
	if err != nil {
		s.internalError(w, "reload project", err)
		return
	}
	writeJSON(w, status, stored)
}

func (s *Server) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "project not found")
	case errors.Is(err, repository.ErrForeignKeyViolation):
		writeMessage(w, http.StatusBadRequest, "unknown team or manager")
	case errors.Is(err, repository.ErrConflict):
		writeMessage(w, http.StatusConflict, "project already exists")
	default:
		s.internalError(w, op, err)
	}
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("not a positive integer")
	}
	return n, nil
}
