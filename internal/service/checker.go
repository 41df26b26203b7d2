package service

import (
	"context"
	"log/slog"

	"github.com/spf13/afero"

	"pypircgen/pkg/logging"
	"pypircgen/pkg/models"
	"pypircgen/pkg/pypirc"
)

// CheckOptions controls a single configuration check
type CheckOptions struct {
	// SkipProbe disables the live requests against the index servers
	SkipProbe bool
}

// Checker runs configuration checks in the background
type Checker struct {
	generator *Generator
	fs        afero.Fs
	prober    *pypirc.Prober
	logger    *slog.Logger
}

// NewChecker creates a checker that validates the file the generator writes
func NewChecker(generator *Generator, fs afero.Fs, prober *pypirc.Prober, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{generator: generator, fs: fs, prober: prober, logger: logger}
}

// Start runs a check on its own goroutine. Items arrive on the returned
// channel in report order; the channel is closed when the check is done.
// The caller must drain the channel.
func (c *Checker) Start(ctx context.Context, opts CheckOptions) <-chan models.ReportItem {
	items := make(chan models.ReportItem)

	prober := c.prober
	if opts.SkipProbe {
		prober = nil
	}
	validator := pypirc.NewValidator(c.fs, prober)

	go func() {
		defer close(items)
		c.logger.InfoContext(ctx, "starting .pypirc configuration check")

		emit := func(item models.ReportItem) {
			logging.LogItem(ctx, c.logger, item)
			items <- item
		}

		path, err := c.generator.Path()
		if err != nil {
			emit(models.ReportItem{Severity: models.SeverityError, Message: err.Error()})
			return
		}
		validator.Validate(ctx, path, emit)
		c.logger.InfoContext(ctx, "auth config check finished")
	}()

	return items
}

// Run performs a check and collects every item into a report
func (c *Checker) Run(ctx context.Context, opts CheckOptions) *models.ValidationReport {
	report := &models.ValidationReport{}
	report.Path, _ = c.generator.Path()
	for item := range c.Start(ctx, opts) {
		report.Add(item)
	}
	return report
}
