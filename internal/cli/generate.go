package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pypircgen/internal/service"
	"pypircgen/pkg/clients"
	"pypircgen/pkg/models"
)

type generateOptions struct {
	pypiToken     string
	testpypiToken string
	fromSecret    string
}

func newGenerateCommand(app func() *App) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write ~/.pypirc from API tokens",
		Long: `Write ~/.pypirc for the given API tokens, replacing any existing file.

Tokens are taken from the flags, then from PYPI_TOKEN and TESTPYPI_TOKEN, and
with --from-secret from a Kubernetes Secret. At least one token is required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			tokens, err := opts.credentials(cmd, a)
			if err != nil {
				return err
			}

			path, err := a.Generator.Generate(cmd.Context(), "cli", tokens)
			if err != nil {
				if errors.Is(err, service.ErrNoTokens) {
					return fmt.Errorf("please provide at least one API token")
				}
				return fmt.Errorf("failed to generate .pypirc file: %w", err)
			}
			fmt.Fprintf(a.Out, ".pypirc file generated successfully at %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.pypiToken, "pypi-token", "", "PyPI API token (defaults to $PYPI_TOKEN)")
	cmd.Flags().StringVar(&opts.testpypiToken, "testpypi-token", "", "TestPyPI API token (defaults to $TESTPYPI_TOKEN)")
	cmd.Flags().StringVar(&opts.fromSecret, "from-secret", "", "read tokens from a Kubernetes Secret, as name or namespace/name")
	return cmd
}

func (o *generateOptions) credentials(cmd *cobra.Command, a *App) (models.CredentialSet, error) {
	tokens := models.CredentialSet{}

	if o.fromSecret != "" {
		k8sClient, err := clients.NewKubernetesClient(a.Config.KubeConfig)
		if err != nil {
			return nil, err
		}
		source := service.NewSecretTokenSource(k8sClient, a.Config.KubeNamespace, map[string]string{
			"pypi":     a.Config.SecretPypiKey,
			"testpypi": a.Config.SecretTestpypiKey,
		}, a.Logger)
		tokens, err = source.Tokens(cmd.Context(), o.fromSecret)
		if err != nil {
			return nil, err
		}
	}

	override := func(target, flagValue, env string) {
		if flagValue == "" {
			flagValue = os.Getenv(env)
		}
		if flagValue != "" {
			tokens[target] = flagValue
		}
	}
	override("pypi", o.pypiToken, "PYPI_TOKEN")
	override("testpypi", o.testpypiToken, "TESTPYPI_TOKEN")
	return tokens, nil
}
