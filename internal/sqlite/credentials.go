package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/projectadmin/internal/domain/session"
)

// CredentialStore implements session.Store with a single-row table.
type CredentialStore struct {
	db *DB
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(db *DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Load returns the stored credentials or session.ErrNoCredentials.
func (s *CredentialStore) Load(ctx context.Context) (session.Credentials, error) {
	var creds session.Credentials
	err := s.db.QueryRowContext(ctx,
		`SELECT token, username, role FROM credentials WHERE id = 1`,
	).Scan(&creds.Token, &creds.Username, &creds.Role)
	if err == sql.ErrNoRows {
		return session.Credentials{}, session.ErrNoCredentials
	}
	if err != nil {
		return session.Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}
	return creds, nil
}

// Save replaces the stored credentials.
func (s *CredentialStore) Save(ctx context.Context, creds session.Credentials) error {
	query := `
		INSERT INTO credentials (id, token, username, role, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			username = excluded.username,
			role = excluded.role,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, creds.Token, creds.Username, creds.Role); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// Clear removes the stored credentials.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
