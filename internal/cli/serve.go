package cli

import (
	"github.com/spf13/cobra"
)

func newServeCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local .pypirc API",
		Long:  "Serve POST /generate-pypirc and the /api/v1 endpoints on the configured host and port until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := app().NewServer()
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
}
