// Package vlog configures the process-wide slog logger the way the
// rest of this module expects it: text-formatted to a file when one
// is configured, discarded entirely otherwise.
package vlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// See https://github.com/golang/go/issues/62005: slog has no built-in
// discard handler, so one is hand-rolled here.
type discardHandler struct {
	slog.JSONHandler
}

func (d *discardHandler) Enabled(context.Context, slog.Level) bool {
	return false
}

// Setup installs the default logger. An empty logfile discards all
// output; otherwise records are appended as text.
func Setup(logfile string, level slog.Level) error {
	var l *slog.Logger

	if logfile != "" {
		f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("couldn't open logfile %q: %w", logfile, err)
		}
		l = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	} else {
		l = slog.New(&discardHandler{})
	}

	slog.SetDefault(l)
	return nil
}
