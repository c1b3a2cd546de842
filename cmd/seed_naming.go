package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-disguise/internal/app"
)

var seedNamingFile string

var seedNamingCmd = &cobra.Command{
	Use:   "seed-naming",
	Short: "Load disguise naming vocabulary",
	Long: `Load naming keywords and their items. Without --file the built-in stock
vocabulary is loaded. Keywords that already exist are left untouched.

Example file:

  keywords:
    animal: [badger, heron, otter]
    colour: [amber, slate]
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		application, err := app.New(ctx)
		if err != nil {
			return err
		}
		defer application.Close()

		var created int
		if seedNamingFile == "" {
			created, err = application.Services.Naming.SeedStock(ctx)
		} else {
			f, openErr := os.Open(seedNamingFile)
			if openErr != nil {
				return fmt.Errorf("open %s: %w", seedNamingFile, openErr)
			}
			defer f.Close()
			created, err = application.Services.Naming.SeedFromYAML(ctx, f)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %d keywords\n", created)
		return nil
	},
}

func init() {
	seedNamingCmd.Flags().StringVar(&seedNamingFile, "file", "", "YAML vocabulary file")
}
