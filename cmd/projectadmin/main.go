package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpggio/projectadmin/internal/config"
)

var (
	cfg    config.Config
	logger *slog.Logger

	apiURL   string
	logLevel string
)

// rootCmd starts the terminal UI when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "projectadmin",
	Short: "Manage projects on the project API",
	Long: `projectadmin is a terminal front end for the project API.

Run without arguments to open the terminal UI. Subcommands:
  login  - store a bearer token for later runs
  logout - forget the stored token
  mcp    - serve the project API as MCP tools over stdio
  devapi - run a local project API backed by SQLite`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		if apiURL != "" {
			loaded.API.BaseURL = apiURL
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		cfg = loaded
		logger = newLogger(cfg.Log, logOutput(cmd))
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Project API base URL (or set PROJECTADMIN_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(devAPICmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
