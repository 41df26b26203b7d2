package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"pypircgen/internal/service"
	"pypircgen/pkg/logging"
	"pypircgen/pkg/models"
	"pypircgen/pkg/report"
)

// formStderrLevel is above every level in use, so nothing reaches the
// terminal while huh owns it. The log file still records everything.
const formStderrLevel = slog.LevelError + 4

// Form actions
const (
	ActionGenerate = "generate"
	ActionTest     = "test"
	ActionClear    = "clear"
	ActionQuit     = "quit"
)

// FormState is what the user has entered so far
type FormState struct {
	PypiToken     string
	TestpypiToken string
	Action        string
}

// Prompter asks the user for tokens and the next action
type Prompter interface {
	Prompt(state *FormState) error
}

// HuhPrompter implements Prompter with a huh terminal form
type HuhPrompter struct{}

func (HuhPrompter) Prompt(state *FormState) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("PyPI .pypirc File Generator").
				Description("Tokens will be saved in ~/.pypirc\nAt least one token is required"),
			huh.NewInput().
				Title("PyPI API Token").
				EchoMode(huh.EchoModePassword).
				Value(&state.PypiToken),
			huh.NewInput().
				Title("TestPyPI API Token").
				EchoMode(huh.EchoModePassword).
				Value(&state.TestpypiToken),
			huh.NewSelect[string]().
				Title("Action").
				Options(
					huh.NewOption("Generate .pypirc", ActionGenerate),
					huh.NewOption("Test Configuration", ActionTest),
					huh.NewOption("Clear", ActionClear),
					huh.NewOption("Quit", ActionQuit),
				).
				Value(&state.Action),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt form: %w", err)
	}
	return nil
}

// FormHandler drives the interactive form. It only adapts user input to the
// shared generator and checker.
type FormHandler struct {
	app      *App
	prompter Prompter

	checks    sync.WaitGroup
	mu        sync.Mutex
	running   bool
	pending   []models.ReportItem
	completed int
}

// NewFormHandler creates a form handler
func NewFormHandler(app *App, prompter Prompter) *FormHandler {
	return &FormHandler{app: app, prompter: prompter}
}

// Run loops until the user quits or aborts the form. Results of background
// checks are printed before each prompt and once more before returning.
func (f *FormHandler) Run(ctx context.Context) error {
	defer logging.RaiseStderrLevel(formStderrLevel)()
	defer f.Wait()

	state := &FormState{}
	for {
		f.flush()
		state.Action = ""
		if err := f.prompter.Prompt(state); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if state.Action == ActionQuit {
			return nil
		}
		f.Handle(ctx, state)
	}
}

// Handle performs one action on state. A test starts a background check and
// returns immediately.
func (f *FormHandler) Handle(ctx context.Context, state *FormState) {
	out := f.app.Out
	switch state.Action {
	case ActionGenerate:
		tokens := models.NewCredentialSet(state.PypiToken, state.TestpypiToken)
		path, err := f.app.Generator.Generate(ctx, "form", tokens)
		switch {
		case errors.Is(err, service.ErrNoTokens):
			report.WriteItem(out, models.ReportItem{Severity: models.SeverityError, Message: "Please enter at least one API token"})
		case err != nil:
			report.WriteItem(out, models.ReportItem{Severity: models.SeverityError, Message: fmt.Sprintf("Failed to generate .pypirc file: %v", err)})
		default:
			report.WriteItem(out, models.ReportItem{Severity: models.SeveritySuccess, Message: fmt.Sprintf(".pypirc file generated successfully at %s", path)})
			f.clear(state)
		}
	case ActionTest:
		f.startCheck(ctx)
	case ActionClear:
		f.clear(state)
	}
}

// Wait blocks until background checks are done and prints what they found
func (f *FormHandler) Wait() {
	f.checks.Wait()
	f.flush()
}

func (f *FormHandler) startCheck(ctx context.Context) {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		report.WriteItem(f.app.Out, models.ReportItem{Severity: models.SeverityInfo, Message: "A configuration check is already running"})
		return
	}
	f.running = true
	f.mu.Unlock()

	fmt.Fprintln(f.app.Out, "Testing... results are shown as they arrive.")
	items := f.app.Checker.Start(ctx, service.CheckOptions{})
	f.checks.Add(1)
	go func() {
		defer f.checks.Done()
		for item := range items {
			f.mu.Lock()
			f.pending = append(f.pending, item)
			f.mu.Unlock()
		}
		f.mu.Lock()
		f.running = false
		f.completed++
		f.mu.Unlock()
	}()
}

// flush prints collected check results on the caller's goroutine, so output
// never interleaves with a drawn form
func (f *FormHandler) flush() {
	f.mu.Lock()
	items, completed := f.pending, f.completed
	f.pending, f.completed = nil, 0
	f.mu.Unlock()

	for _, item := range items {
		report.WriteItem(f.app.Out, item)
	}
	for i := 0; i < completed; i++ {
		fmt.Fprintln(f.app.Out, "Check complete.")
	}
}

func (f *FormHandler) clear(state *FormState) {
	state.PypiToken = ""
	state.TestpypiToken = ""
	f.app.Logger.Info("entry fields cleared")
}

// runInteractive serves the API in the background while the form runs in
// the foreground. Closing the form stops the server.
func runInteractive(ctx context.Context, app *App, prompter Prompter) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv, err := app.NewServer()
	if err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Run(ctx); err != nil {
			app.Logger.Error("API server stopped", "error", err)
		}
	}()
	fmt.Fprintf(app.Out, "API available at http://%s/generate-pypirc\n", app.Config.Addr())

	err = NewFormHandler(app, prompter).Run(ctx)
	cancel()
	<-done
	return err
}

func newFormCommand(app func() *App) *cobra.Command {
	var withServer bool

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in tokens interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if withServer {
				return runInteractive(cmd.Context(), app(), HuhPrompter{})
			}
			return NewFormHandler(app(), HuhPrompter{}).Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&withServer, "serve", true, "also serve the API while the form is open")
	return cmd
}
