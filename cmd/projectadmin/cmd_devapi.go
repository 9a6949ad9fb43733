package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/projectadmin/internal/sqlite"
	"github.com/rpggio/projectadmin/internal/transport"
)

var devAPICmd = &cobra.Command{
	Use:   "devapi",
	Short: "Run a local project API backed by SQLite",
	Long: `Run a local implementation of the project API for development.

With devapi.seed enabled an empty database is filled with demo teams, users
and projects. Every seeded account uses the password "password".`,
	RunE: runDevAPI,
}

func runDevAPI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := openDB(cfg.DevAPI.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.DevAPI.Seed {
		if err := sqlite.Seed(ctx, db); err != nil {
			return err
		}
	}

	router := transport.NewServer(transport.Deps{
		Projects: sqlite.NewProjectRepository(db),
		Teams:    sqlite.NewTeamRepository(db),
		Users:    sqlite.NewUserRepository(db),
		Logger:   logger,
	})

	addr := net.JoinHostPort(cfg.DevAPI.Host, strconv.Itoa(cfg.DevAPI.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "db", cfg.DevAPI.DBPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}
