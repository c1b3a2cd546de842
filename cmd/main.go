package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "disguise",
	Short: "Per-context disguised identities for course participants",
	Long: `disguise runs the HTTP service that swaps a participant's identity for a
per-context disguise account while they view disguised courses and modules,
plus the maintenance commands that go with it.`,
	SilenceUsage: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(serveCmd, migrateCmd, seedNamingCmd, provisionCmd, tokenCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
