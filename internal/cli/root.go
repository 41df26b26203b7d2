package cli

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"pypircgen/internal/config"
	"pypircgen/pkg/logging"
	"pypircgen/pkg/telemetry"
)

// ErrCheckFailed is returned by the check command when the report has errors
var ErrCheckFailed = errors.New("configuration check found errors")

// session owns what PersistentPreRunE sets up. close runs once, whether the
// command succeeded or not.
type session struct {
	app      *App
	shutdown telemetry.Shutdown
	once     sync.Once
}

func (s *session) close() {
	s.once.Do(func() {
		if s.shutdown != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.shutdown(ctx); err != nil && s.app != nil {
				s.app.Logger.Warn("failed to flush telemetry", "error", err)
			}
		}
		if s.app != nil {
			s.app.Logger.Info("application closed")
		}
		logging.Close()
	})
}

// NewRootCommand creates the pypircgen command tree. With no subcommand it
// runs the API server and the interactive form side by side.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *session) {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:           "pypircgen",
		Short:         "Generate and check .pypirc credential files",
		Long:          "pypircgen writes ~/.pypirc for PyPI and TestPyPI API tokens, serves a local API for doing so and checks that the file works.",
		Version:       telemetry.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if err := logging.Init(logging.Options{Level: cfg.EffectiveLogLevel(), File: cfg.LogFile, Stderr: cmd.ErrOrStderr()}); err != nil {
				return err
			}
			gin.SetMode(gin.ReleaseMode)

			shutdown, err := telemetry.Init(cmd.Context(), cfg.Telemetry)
			if err != nil {
				return err
			}
			s.shutdown = shutdown
			s.app = NewApp(cfg, afero.NewOsFs(), nil, nil, cmd.OutOrStdout())
			s.app.Logger.Info("application starting", "command", cmd.Name())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), s.app, HuhPrompter{})
		},
	}

	appFn := func() *App { return s.app }
	rootCmd.AddCommand(
		newServeCommand(appFn),
		newGenerateCommand(appFn),
		newCheckCommand(appFn),
		newFormCommand(appFn),
		newTargetsCommand(),
		newTokenCommand(appFn),
	)
	return rootCmd, s
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context, args []string) int {
	cmd, s := newRootCommand()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	// PersistentPostRun is skipped when a command fails
	s.close()
	if err != nil {
		if !errors.Is(err, ErrCheckFailed) {
			cmd.PrintErrln("Error:", err)
		}
		return 1
	}
	return 0
}
