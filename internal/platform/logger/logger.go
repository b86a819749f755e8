// Package logger provides structured logging for the application using the
// standard library log/slog package, plus helpers for carrying a logger
// through a context.Context.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the application's logging system from the configured
// log level. It creates a structured JSON logger writing to stdout, sets it
// as the process default, and returns it.
func Setup(level string) *slog.Logger {
	return setup(level, os.Stdout, true)
}

func setup(level string, out io.Writer, setDefault bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	log := slog.New(slog.NewJSONHandler(out, opts))
	if setDefault {
		slog.SetDefault(log)
	}
	return log
}

// parseLevel maps a configured level name to a slog.Level,
// case-insensitively. Unknown values fall back to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		slog.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
		return slog.LevelInfo
	}
}
