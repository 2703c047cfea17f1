package sumset

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with sumset-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTarget adds the target sum to the logger.
func (l *Logger) WithTarget(target int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("target", target),
	}
}

// WithEntryCount adds the entry count to the logger.
func (l *Logger) WithEntryCount(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("entries", n),
	}
}

// LogSolve logs a completed solve.
func (l *Logger) LogSolve(target int64, entries int, found bool, duration time.Duration, err error) {
	if err != nil {
		l.Error("solve failed",
			"target", target,
			"entries", entries,
			"error", err,
		)
	} else {
		l.Debug("solve completed",
			"target", target,
			"entries", entries,
			"found", found,
			"duration", duration,
		)
	}
}
