// Package testserver runs the dev API over httptest for end-to-end tests.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/projectadmin/internal/sqlite"
	"github.com/rpggio/projectadmin/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	// BaseURL is the API root to hand to apiclient.New.
	BaseURL string
	Users   *sqlite.UserRepository
}

// New starts a dev API backed by a seeded, test-scoped in-memory database.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	require.NoError(t, sqlite.Seed(context.Background(), db))

	users := sqlite.NewUserRepository(db)
	server := httptest.NewServer(transport.NewServer(transport.Deps{
		Projects: sqlite.NewProjectRepository(db),
		Teams:    sqlite.NewTeamRepository(db),
		Users:    users,
	}))

	ts := &TestServer{
		Server:  server,
		DB:      db,
		BaseURL: server.URL + "/api",
		Users:   users,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// IssueToken returns a fresh bearer token for a seeded account.
func (ts *TestServer) IssueToken(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()
	user, err := ts.Users.Authenticate(ctx, email, sqlite.SeedPassword)
	require.NoError(t, err)
	token, err := ts.Users.IssueToken(ctx, user.ID)
	require.NoError(t, err)
	return token
}

// RevokeTokens invalidates every issued token, as if they had expired.
func (ts *TestServer) RevokeTokens(t *testing.T) {
	t.Helper()
	_, err := ts.DB.Exec(`DELETE FROM api_tokens`)
	require.NoError(t, err)
}
