// Package logging configures colored structured logging with tint on top of
// log/slog.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures the default slog logger at the given level name
// ("debug", "info", "warn", "error"); an empty or unknown name falls back to
// the LOG_LEVEL environment variable, then to info.
func Setup(level string) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	slog.SetDefault(New(parseLevel(level)))
}

// New builds a tint-backed logger at the given level.
func New(level slog.Level) *slog.Logger {
	return slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
