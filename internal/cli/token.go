package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pypircgen/pkg/auth"
)

func newTokenCommand(app func() *App) *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the API in jwt auth mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			token, err := auth.IssueToken(a.Config.JWTSecret, subject, ttl)
			if err != nil {
				return fmt.Errorf("cannot issue token (is JWT_SECRET set?): %w", err)
			}
			fmt.Fprintln(a.Out, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "pypircgen-client", "subject claim of the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
