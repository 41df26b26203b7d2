// Package logging configures the process-wide slog logger. Records go to
// stderr as text and, when a log file is configured, to that file as JSON.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"pypircgen/pkg/models"
)

var (
	mu      sync.Mutex
	logFile *os.File

	stderrLevel = new(slog.LevelVar)
)

// Options configures the logger
type Options struct {
	// Level is the minimum level written to stderr
	Level string
	// File is the path of the durable log. Empty disables file logging.
	File string
	// Stderr defaults to os.Stderr
	Stderr io.Writer
}

// Init installs the default logger. The file sink always records debug and up.
func Init(opts Options) error {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	stderrLevel.Set(ParseLevel(opts.Level))
	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: stderrLevel}),
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", opts.File, err)
		}
		mu.Lock()
		logFile = f
		mu.Unlock()
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	slog.SetDefault(slog.New(&multiHandler{handlers: handlers}))
	return nil
}

// Close closes the log file if one was opened
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// RaiseStderrLevel suppresses stderr records below level until the returned
// func is called. The log file is unaffected.
func RaiseStderrLevel(level slog.Level) (restore func()) {
	prev := stderrLevel.Level()
	if level > prev {
		stderrLevel.Set(level)
	}
	return func() { stderrLevel.Set(prev) }
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFor maps a report severity to the level it is logged at
func LevelFor(severity models.Severity) slog.Level {
	switch severity {
	case models.SeverityError:
		return slog.LevelError
	case models.SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// LogItem records a report item on logger
func LogItem(ctx context.Context, logger *slog.Logger, item models.ReportItem) {
	attrs := []any{"severity", string(item.Severity)}
	if item.Target != "" {
		attrs = append(attrs, "target", item.Target)
	}
	logger.Log(ctx, LevelFor(item.Severity), item.Message, attrs...)
}

// multiHandler fans out log records to multiple handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
