package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/repository"
)

// UserRepository implements repository.UserRepository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a user with a hashed password. An empty ID is assigned.
func (r *UserRepository) Create(ctx context.Context, user *session.User, password string) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, role, password_hash) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Role, hashSecret(password),
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*session.User, error) {
	var user session.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, role FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListByRole returns users holding the given role ordered by name
func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]session.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, role FROM users WHERE role = ? ORDER BY name ASC`, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []session.User{}
	for rows.Next() {
		var user session.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// Authenticate checks an email/password pair
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*session.User, error) {
	var user session.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, role FROM users WHERE email = ? AND password_hash = ?`,
		email, hashSecret(password),
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role)
	if err == sql.ErrNoRows {
		return nil, repository.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	return &user, nil
}

// IssueToken creates a new bearer token for a user. Only its hash is stored.
func (r *UserRepository) IssueToken(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_tokens (token_hash, user_id) VALUES (?, ?)`,
		hashSecret(token), userID,
	)
	if isForeignKeyViolation(err) {
		return "", repository.ErrForeignKeyViolation
	}
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// ResolveToken returns the user owning a bearer token
func (r *UserRepository) ResolveToken(ctx context.Context, token string) (*session.User, error) {
	var user session.User
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.email, u.role
		FROM api_tokens k
		JOIN users u ON u.id = k.user_id
		WHERE k.token_hash = ?
	`, hashSecret(token)).Scan(&user.ID, &user.Name, &user.Email, &user.Role)
	if err == sql.ErrNoRows {
		return nil, repository.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	return &user, nil
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
