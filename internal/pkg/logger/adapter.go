package logger

import (
	"log/slog"

	"solana_analyst/internal/app/port"
)

// slogAdapter implements port.Logger on top of a slog logger.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a port.Logger writing through the global slog logger.
func NewSlogAdapter() port.Logger {
	ensureInitialized()
	return &slogAdapter{l: globalLogger}
}

// FromSlog wraps an explicit slog logger, mainly for tests.
func FromSlog(l *slog.Logger) port.Logger {
	return &slogAdapter{l: l}
}

func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }

// With returns a logger that adds args to every record.
func (a *slogAdapter) With(args ...any) port.Logger {
	return &slogAdapter{l: a.l.With(args...)}
}
