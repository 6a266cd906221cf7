// Package log configures structured logging for the service binaries.
package log

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger, tagging every record with a component.
type Logger struct {
	*slog.Logger
	component string
}

// New creates a text-handler logger at the given level for the named
// component.
func New(level slog.Level, component string) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &Logger{
		Logger:    slog.New(handler).With("component", component),
		component: component,
	}
}

// WithComponent returns a logger for a sub-component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("component", component),
		component: component,
	}
}

// SetDefault installs the logger as the process-wide slog default so
// packages logging via slog.InfoContext share the handler.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}
