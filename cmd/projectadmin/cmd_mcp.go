package main

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rpggio/projectadmin/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the project API as MCP tools over stdio",
	Long: `Serve list/create/update/delete project tools over the MCP stdio transport.

Requests use the token stored by "projectadmin login". Logs go to stderr or
the configured log file; stdout carries only protocol messages.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if !c.sessions.Current().Authenticated() {
		logger.Warn("no stored token; tools will report UNAUTHORIZED until `projectadmin login` is run")
	}

	server := mcp.NewServer(mcp.Config{API: c.api, Logger: logger})
	logger.Info("starting stdio transport", "api", cfg.API.BaseURL)

	// Run blocks until stdin closes or ctx is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server error: %w", err)
	}
	logger.Info("shutting down")
	return nil
}
