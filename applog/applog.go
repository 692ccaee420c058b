// Package applog initialises the global slog logger for the replay server.
// Call Init once at startup; all other packages take a *slog.Logger or use
// log/slog directly.
package applog

import (
	"io"
	"log/slog"
	"os"
)

// Init sets up the global slog logger writing text records to stderr.
func Init(level slog.Level) *slog.Logger {
	return InitWriter(os.Stderr, level)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
