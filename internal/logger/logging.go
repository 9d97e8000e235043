// Package logger configures charmbracelet/log for the suggester.
// The terminal belongs to the UI, so output normally goes to a file.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Setup points the default logger at path and returns a close func.
// An empty path discards all output.
func Setup(path string, level log.Level) (func() error, error) {
	if path == "" {
		Configure(io.Discard, level)
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	Configure(f, level)
	return f.Close, nil
}

// Configure replaces the default logger's writer and level
func Configure(w io.Writer, level log.Level) {
	log.SetDefault(log.NewWithOptions(w, log.Options{
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           level,
	}))
}

// New creates a prefixed logger that shares the default logger's output
func New(prefix string) *log.Logger {
	return log.Default().WithPrefix(prefix)
}

// ParseLevel maps a config string to a level, falling back to info
func ParseLevel(s string) log.Level {
	if s == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
