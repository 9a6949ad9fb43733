package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rpggio/projectadmin/internal/view"
)

// Manager owns the current credentials and reacts to authorization failures.
type Manager struct {
	mu     sync.RWMutex
	store  Store
	nav    view.Navigator
	creds  Credentials
	logger *slog.Logger
}

// NewManager loads stored credentials, if any.
func NewManager(ctx context.Context, store Store, logger *slog.Logger) (*Manager, error) {
	m := &Manager{store: store, logger: logger}
	creds, err := store.Load(ctx)
	if err != nil && !errors.Is(err, ErrNoCredentials) {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	m.creds = creds
	return m, nil
}

// SetNavigator sets where HandleUnauthorized redirects.
func (m *Manager) SetNavigator(nav view.Navigator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nav = nav
}

// Current returns a copy of the current credentials.
func (m *Manager) Current() Credentials {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds
}

// Token returns the bearer token, or "" when logged out.
func (m *Manager) Token(context.Context) string {
	return m.Current().Token
}

// Role returns the role of the current user.
func (m *Manager) Role() string {
	return m.Current().Role
}

// CanManageProjects reports whether create/edit/delete controls are shown.
func (m *Manager) CanManageProjects() bool {
	return m.Current().CanManageProjects()
}

// Login stores new credentials.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	if strings.TrimSpace(creds.Token) == "" {
		return ErrInvalidInput
	}
	if err := m.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	m.mu.Lock()
	m.creds = creds
	m.mu.Unlock()
	m.log("session started", "username", creds.Username, "role", creds.Role)
	return nil
}

// Logout forgets every stored credential.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	m.mu.Lock()
	m.creds = Credentials{}
	m.mu.Unlock()
	return nil
}

// HandleUnauthorized drops the token and redirects to the login route.
// The username and role are kept so the login form can be prefilled.
func (m *Manager) HandleUnauthorized(ctx context.Context) {
	m.mu.Lock()
	m.creds.Token = ""
	creds := m.creds
	nav := m.nav
	m.mu.Unlock()

	if err := m.store.Save(ctx, creds); err != nil && m.logger != nil {
		m.logger.Warn("failed to persist cleared token", "error", err)
	}
	m.log("session expired, redirecting to login")
	if nav != nil {
		nav.Navigate(view.RouteLogin)
	}
}

func (m *Manager) log(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}
