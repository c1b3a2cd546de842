package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-disguise/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		application, err := app.New(ctx)
		if err != nil {
			return err
		}
		defer application.Close()

		addr := ":" + application.Cfg.Port
		application.Log.Info("Server listening", "addr", addr)
		return application.Run(ctx, addr)
	},
}
