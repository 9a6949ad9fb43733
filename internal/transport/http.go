package transport

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/repository"
)

// Deps are the stores behind the dev API.
type Deps struct {
	Projects repository.ProjectRepository
	Teams    repository.TeamRepository
	Users    repository.UserRepository
	Logger   *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	projects repository.ProjectRepository
	teams    repository.TeamRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

// NewServer creates the dev API router. Every route except login and health
// lives under /api and requires a bearer token.
func NewServer(deps Deps) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	srv := &Server{
		projects: deps.Projects,
		teams:    deps.Teams,
		users:    deps.Users,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", srv.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(deps.Users))

			r.Get("/teams", srv.handleListTeams)
			r.Get("/users/managers", srv.handleListManagers)
			r.Get("/projects", srv.handleListProjects)
			r.Get("/projects/{id}", srv.handleGetProject)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(session.RoleAdmin, session.RoleManager))
				r.Post("/projects", srv.handleCreateProject)
				r.Put("/projects/{id}", srv.handleUpdateProject)
				r.Delete("/projects/{id}", srv.handleDeleteProject)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
