package cli

import (
	"github.com/spf13/cobra"

	"pypircgen/internal/service"
	"pypircgen/pkg/models"
	"pypircgen/pkg/report"
)

func newCheckCommand(app func() *App) *cobra.Command {
	var output string
	var noProbe bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate ~/.pypirc and test its credentials",
		Long:  "Check the structure of ~/.pypirc against the known package indexes and authenticate against each configured index once.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			r := &models.ValidationReport{}
			r.Path, _ = a.Generator.Path()
			for item := range a.Checker.Start(cmd.Context(), service.CheckOptions{SkipProbe: noProbe}) {
				if format == report.FormatText {
					report.WriteItem(a.Out, item)
				}
				r.Add(item)
			}
			if format != report.FormatText {
				if err := report.Render(a.Out, r, format); err != nil {
					return err
				}
			}

			if r.HasErrors() {
				return ErrCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&noProbe, "no-probe", false, "skip live authentication against the index servers")
	return cmd
}
