package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"pypircgen/pkg/models"
	"pypircgen/pkg/pypirc"
)

// ErrNoTokens is returned when a generation request carries no usable token
var ErrNoTokens = errors.New("at least one API token is required")

// FileWriter persists rendered credential files
type FileWriter interface {
	Write(text string) (string, error)
	Path() (string, error)
}

// Generator renders and writes credential files. It is shared by every entry
// point so the render and write steps exist exactly once.
type Generator struct {
	writer    FileWriter
	logger    *slog.Logger
	generated metric.Int64Counter
}

// NewGenerator creates a generator writing through writer
func NewGenerator(writer FileWriter, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	counter, err := otel.Meter("pypircgen/service").Int64Counter(
		"pypirc.generated",
		metric.WithDescription("Number of .pypirc generation attempts"),
	)
	if err != nil {
		logger.Warn("failed to create generation counter", "error", err)
	}
	return &Generator{writer: writer, logger: logger, generated: counter}
}

// Generate writes a credential file for tokens and returns its path. A set
// without any token is rejected before the filesystem is touched. source
// names the caller for logging ("api", "form", "cli").
func (g *Generator) Generate(ctx context.Context, source string, tokens models.CredentialSet) (string, error) {
	g.logger.InfoContext(ctx, "request received to generate .pypirc file", "source", source)

	if !tokens.HasAny() {
		g.logger.WarnContext(ctx, "generation rejected: at least one API token is required", "source", source)
		g.record(ctx, source, "rejected")
		return "", ErrNoTokens
	}

	path, err := g.writer.Write(pypirc.Build(tokens))
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to generate .pypirc file", "source", source, "error", err)
		g.record(ctx, source, "failed")
		return "", err
	}

	targets := make([]string, 0, 2)
	for _, t := range tokens.Configured() {
		targets = append(targets, t.Name)
	}
	g.logger.InfoContext(ctx, ".pypirc file generated successfully", "source", source, "path", path, "targets", targets)
	g.record(ctx, source, "ok")
	return path, nil
}

// Path returns where Generate writes
func (g *Generator) Path() (string, error) {
	return g.writer.Path()
}

func (g *Generator) record(ctx context.Context, source, result string) {
	if g.generated == nil {
		return
	}
	g.generated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("result", result),
	))
}
