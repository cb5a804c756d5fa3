package main

import (
	"io"
	"log/slog"
)

// newLogger builds the diagnostic logger. Results go to stdout; the logger
// only carries warnings, and debug records with verbose.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	if quiet {
		return slog.New(slog.DiscardHandler)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
