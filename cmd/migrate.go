package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-disguise/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := app.LoadConfig(log)
		if err != nil {
			return err
		}
		svc, err := app.OpenDB(log, cfg.Database)
		if err != nil {
			return err
		}
		log.Info("migrations applied", "driver", cfg.Database.Driver)
		return svc.Close()
	},
}
