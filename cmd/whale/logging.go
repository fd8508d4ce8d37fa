package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger creates the structured logger used by every command.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "whale",
		Level:           lvl,
	}), nil
}

// openGameLog returns the logger used while the TUI owns the terminal.
// Without --log-file everything is discarded so the alt screen stays clean.
// The returned close func is never nil.
func openGameLog(path, level string) (*log.Logger, func() error, error) {
	if path == "" {
		logger, err := newLogger(io.Discard, level)
		return logger, func() error { return nil }, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f.Close, nil
}
