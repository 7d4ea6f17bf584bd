// Package logger configures structured logging. The TUI owns the
// terminal, so the default sink is a file, not stdout.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Default is the default logger instance.
var Default = slog.New(slog.NewTextHandler(io.Discard, nil))

// New creates a structured text logger with the specified level.
func New(level string, output io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}

// Open sets the default logger to write to the given file.
func Open(path, level string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	SetDefault(New(level, f))
	return f, nil
}

// SetDefault sets the default logger.
func SetDefault(l *slog.Logger) {
	Default = l
	slog.SetDefault(l)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { Default.Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { Default.Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { Default.Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { Default.Error(msg, args...) }
