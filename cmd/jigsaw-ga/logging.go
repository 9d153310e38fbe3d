// ABOUTME: slog setup: JSON trace to stderr, optionally teed to a debug log file
// ABOUTME: Every line is stamped with the run's uuid so concurrent runs can be told apart in a shared log

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// newLogger builds the run's structured logger. debugLogPath, if
// non-empty, additionally writes every record to that file.
func newLogger(runID string, debugLogPath string) (*slog.Logger, func(), error) {
	handlers := []slog.Handler{slog.NewJSONHandler(os.Stderr, nil)}
	closeFn := func() {}

	if debugLogPath != "" {
		f, err := os.Create(debugLogPath)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeFn = func() { _ = f.Close() }
	}

	logger := slog.New(teeHandler{handlers: handlers}).With("run_id", runID)
	return logger, closeFn, nil
}

// newRunID mints a fresh run identifier, stamped into the log trace and
// the output image's sidecar metadata file.
func newRunID() string {
	return uuid.NewString()
}

// teeHandler fans every record out to multiple slog.Handlers.
type teeHandler struct {
	handlers []slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range t.handlers {
		if h.Enabled(ctx, record.Level) {
			if err := h.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return teeHandler{handlers: next}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		next[i] = h.WithGroup(name)
	}
	return teeHandler{handlers: next}
}
