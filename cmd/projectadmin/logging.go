package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rpggio/projectadmin/internal/config"
)

// logOutput picks the fallback log sink when no log file is configured. The
// terminal UI owns the screen and the MCP server owns stdout, so neither may
// log to stdout. Only the root command runs the UI.
func logOutput(cmd *cobra.Command) io.Writer {
	if !cmd.HasParent() {
		return io.Discard
	}
	return os.Stderr
}

func newLogger(cfg config.LogConfig, fallback io.Writer) *slog.Logger {
	w := fallback
	if cfg.Path != "" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		w = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Level),
	}))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
