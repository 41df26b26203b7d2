package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pypircgen/pkg/models"
)

func newTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the supported package indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREPOSITORY\tVERIFICATION URL")
			for _, t := range models.DefaultTargets {
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, t.RepositoryURL, t.VerificationURL)
			}
			return w.Flush()
		},
	}
}
