package slogx

import (
	"log/slog"
)

// Logger is the logging capability the SDK depends on. Implementations only
// need debug and error output; a nil Logger disables logging entirely.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, err error, args ...any)
}

// Adapt exposes a *slog.Logger as a Logger. The error is attached under the
// "error" key.
func Adapt(l *slog.Logger) Logger {
	if l == nil {
		return nil
	}
	return slogAdapter{l: l}
}

type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) Debug(msg string, args ...any) {
	a.l.Debug(msg, args...)
}

func (a slogAdapter) Error(msg string, err error, args ...any) {
	a.l.Error(msg, append([]any{"error", err}, args...)...)
}

// Debug logs through l when it is set.
func Debug(l Logger, msg string, args ...any) {
	if l != nil {
		l.Debug(msg, args...)
	}
}

// Error logs through l when it is set.
func Error(l Logger, msg string, err error, args ...any) {
	if l != nil {
		l.Error(msg, err, args...)
	}
}
