package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/yanqian/vibe-weather/internal/infra/config"
)

// New constructs the JSON slog logger shared by every component.
func New(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Log.Level)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = parseLevel(v)
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", "vibe-weather")
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
