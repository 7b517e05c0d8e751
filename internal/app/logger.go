package app

import (
	"log/slog"
	"os"
	"strings"

	"dispatch-platform-go/internal/logx"
)

// NewLogger builds the process-wide JSON logger. The minimum level is
// taken from LOG_LEVEL (debug, info, warn, error) and defaults to info.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	}))
	return logx.NewSlogAdapter(base)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
