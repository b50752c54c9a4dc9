// Package logging builds the CLI's structured logger and carries it through
// context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// New creates a logger writing to stderr. When stderr is a terminal the
// output is human-readable text, otherwise JSON. With debug set the level
// is Debug, otherwise only warnings and errors are written.
func New(debug bool) *slog.Logger {
	return NewWithWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), debug)
}

// NewWithWriter creates a logger writing to w; text selects the text handler.
func NewWithWriter(w io.Writer, text bool, debug bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelWarn}
	if debug {
		options.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

type key struct{}

var loggerKey = key{}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger carried by ctx, or a logger that discards
// everything when there is none.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
