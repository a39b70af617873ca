package hmsearch

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with hmsearch-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "insert completed")
	}
}

// LogLookup logs a lookup operation.
func (l *Logger) LogLookup(ctx context.Context, candidates, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "lookup failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "lookup completed",
			"candidates", candidates,
			"results", results,
		)
	}
}

// LogExport logs a snapshot export operation.
func (l *Logger) LogExport(ctx context.Context, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "export completed",
			"records", records,
		)
	}
}

// LogImport logs a snapshot import operation.
func (l *Logger) LogImport(ctx context.Context, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "import failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "import completed",
			"records", records,
		)
	}
}
