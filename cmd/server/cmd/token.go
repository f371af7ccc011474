package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"history/internal/domain/session"
)

var (
	tokenUser string
	tokenTTL  time.Duration
)

// Users live outside this service; the token command mints a bearer token
// for an owner id signed with the configured secret.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a user id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if tokenUser == "" {
			return errors.New("--user is required")
		}
		ttl := cfg.Auth.TokenTTL
		if cmd.Flags().Changed("ttl") {
			ttl = tokenTTL
		}

		token, err := session.NewService(cfg.Auth.Secret, ttl, log).Issue(tokenUser, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "owner id to put in the user_id claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime, 0 for no expiry (default TOKEN_TTL)")
}
