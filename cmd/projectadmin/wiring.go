package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpggio/projectadmin/internal/apiclient"
	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/sqlite"
)

// client bundles the session store, session manager and API client shared by
// the tui, mcp and login commands.
type client struct {
	db       *sqlite.DB
	sessions *session.Manager
	api      *apiclient.Client
}

func openClient(ctx context.Context) (*client, error) {
	db, err := openDB(cfg.Session.DBPath)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewManager(ctx, sqlite.NewCredentialStore(db), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	opts := []apiclient.Option{
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithTokenSource(sessions),
		apiclient.WithLogger(logger),
	}
	for k, v := range cfg.API.Headers {
		opts = append(opts, apiclient.WithHeader(k, v))
	}
	api := apiclient.New(cfg.API.BaseURL, opts...)
	api.OnUnauthorized(sessions.HandleUnauthorized)

	return &client{db: db, sessions: sessions, api: api}, nil
}

func (c *client) Close() error {
	return c.db.Close()
}

func openDB(path string) (*sqlite.DB, error) {
	if err := ensureDBDir(path); err != nil {
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
