package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/neurobridge-disguise/internal/app"
	httpMW "github.com/yungbote/neurobridge-disguise/internal/http/middleware"
)

var (
	tokenUser string
	tokenSID  string
	tokenTTL  time.Duration
)

// Host platforms mint session tokens themselves; this is for local testing.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a session token for a user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		userID, err := uuid.Parse(tokenUser)
		if err != nil || userID == uuid.Nil {
			return fmt.Errorf("invalid --user %q", tokenUser)
		}
		if tokenSID == "" {
			tokenSID = uuid.NewString()
		}

		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()
		cfg, err := app.LoadConfig(log)
		if err != nil {
			return err
		}

		tok, err := httpMW.SignSessionToken(cfg.Auth.JWTSecretKey, tokenSID, userID, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "real user id")
	tokenCmd.Flags().StringVar(&tokenSID, "sid", "", "session id (random when empty)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}
