package sparseset

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with sparseset-specific helpers.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithName adds a set name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("set", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, name string, values, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"set", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "set saved",
		"set", name,
		"values", values,
		"bytes", bytes,
	)
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, values int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"set", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "set loaded",
		"set", name,
		"values", values,
	)
}

// LogBatch logs a multi-set load or save.
func (l *Logger) LogBatch(ctx context.Context, op string, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, op+" completed with failures",
			"total", count,
			"failed", failed,
		)
		return
	}
	l.DebugContext(ctx, op+" completed",
		"count", count,
	)
}
