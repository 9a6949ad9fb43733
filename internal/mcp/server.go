package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/projectadmin/internal/apiclient"
)

// Version is reported to MCP clients during initialization.
var Version = "0.1.0"

// Config contains server configuration.
type Config struct {
	API    apiclient.API
	Logger *slog.Logger
}

// NewServer creates an MCP server exposing the project API as tools.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "projectadmin",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.API, cfg.Logger)

	return server
}
