package config

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a configured level name to a slog.Level, defaulting to
// info for unknown values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a text logger at the configured level. Server processes
// should pass stderr so stdout stays free for the wire protocol.
func NewLogger(w io.Writer, cfg LoggingConfig) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})
	return slog.New(handler)
}
