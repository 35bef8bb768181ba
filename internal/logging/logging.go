package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New builds the process-wide slog.Logger. Output is a text handler on
// stdout; the level string comes from config and unknown values fall back
// to debug.
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

// ForComponent tags a child logger with the component name. Every package
// that logs gets one of these so log lines are attributable.
func ForComponent(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With("component", name)
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
