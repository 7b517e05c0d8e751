package logx

import (
	"context"
	"log/slog"
)

type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps an *slog.Logger in the Logger interface.
func NewSlogAdapter(l *slog.Logger) Logger {
	return slogAdapter{l: l}
}

func (s slogAdapter) Debug(msg string, fields ...Field) { s.log(slog.LevelDebug, msg, fields) }

func (s slogAdapter) Info(msg string, fields ...Field) { s.log(slog.LevelInfo, msg, fields) }

func (s slogAdapter) Warn(msg string, fields ...Field) { s.log(slog.LevelWarn, msg, fields) }

func (s slogAdapter) Error(msg string, fields ...Field) { s.log(slog.LevelError, msg, fields) }

// With returns a logger that attaches fields to every subsequent entry.
func (s slogAdapter) With(fields ...Field) Logger {
	return slogAdapter{l: s.l.With(slogArgs(fields)...)}
}

// Sync is a no-op: slog handlers do not buffer.
func (s slogAdapter) Sync() error { return nil }

func (s slogAdapter) log(level slog.Level, msg string, fields []Field) {
	s.l.Log(context.Background(), level, msg, slogArgs(fields)...)
}

func slogArgs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}
