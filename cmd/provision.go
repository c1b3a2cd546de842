package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-disguise/internal/app"
)

var (
	provisionContext string
	provisionCount   int
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Pre-create unmapped disguise accounts for a context",
	Long: `Create disguise accounts ahead of time and add them to the context's
unmapped pool. Participants entering the context claim pooled accounts before
any new account is created.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		contextID, err := uuid.Parse(provisionContext)
		if err != nil {
			return fmt.Errorf("--context: %w", err)
		}
		ctx := cmd.Context()
		application, err := app.New(ctx)
		if err != nil {
			return err
		}
		defer application.Close()

		created, err := application.Services.Identity.Provision(ctx, contextID, provisionCount)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "provisioned %d disguises for %s\n", created, contextID)
		return nil
	},
}

func init() {
	provisionCmd.Flags().StringVar(&provisionContext, "context", "", "course or module context id")
	provisionCmd.Flags().IntVar(&provisionCount, "count", 10, "number of accounts to create")
	_ = provisionCmd.MarkFlagRequired("context")
}
