package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"pypircgen/internal/config"
	"pypircgen/internal/handlers"
	"pypircgen/internal/server"
	"pypircgen/internal/service"
	"pypircgen/pkg/auth"
	"pypircgen/pkg/pypirc"
)

// App holds the wired services one invocation works with. Every entry point
// receives it explicitly instead of reaching for package state.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Fs        afero.Fs
	Generator *service.Generator
	Checker   *service.Checker
	Out       io.Writer
}

// NewApp wires the generator and checker on fs. home may be nil to use the
// process owner's home directory.
func NewApp(cfg *config.Config, fs afero.Fs, home pypirc.HomeResolver, logger *slog.Logger, out io.Writer) *App {
	if logger == nil {
		logger = slog.Default()
	}
	writer := pypirc.NewWriter(fs, home, cfg.Filename)
	generator := service.NewGenerator(writer, logger)
	prober := pypirc.NewProber(cfg.GetProbeTimeout())
	return &App{
		Config:    cfg,
		Logger:    logger,
		Fs:        writer.Fs(),
		Generator: generator,
		Checker:   service.NewChecker(generator, writer.Fs(), prober, logger),
		Out:       out,
	}
}

// NewServer builds the HTTP API for the app
func (a *App) NewServer() (*server.Server, error) {
	authMiddleware, err := auth.NewMiddleware(a.Config.AuthMode, a.Config.JWTSecret, a.Logger)
	if err != nil {
		return nil, err
	}
	if authMiddleware.Mode() == auth.ModeDevelopment && a.Config.Server.Host != "127.0.0.1" && a.Config.Server.Host != "localhost" {
		a.Logger.Warn("API is unauthenticated and bound to a non-loopback address", "host", a.Config.Server.Host)
	}
	handler := handlers.NewPypircHandler(a.Generator, a.Checker, a.Logger)
	router := server.NewRouter(a.Config, handler, authMiddleware, a.Logger)
	return server.New(a.Config, router, a.Logger), nil
}
