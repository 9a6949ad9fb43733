package main

import (
	"github.com/spf13/cobra"

	"github.com/rpggio/projectadmin/internal/tui"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	logger.Info("starting terminal ui", "api", cfg.API.BaseURL)
	return tui.Run(ctx, tui.Deps{
		API:           c.api,
		Sessions:      c.sessions,
		Logger:        logger,
		Debounce:      cfg.UI.Debounce,
		RedirectDelay: cfg.UI.RedirectDelay,
	})
}
