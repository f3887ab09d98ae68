// Package zlog builds a zerolog logger and exposes it through the SDK's
// logging capability, for callers that already standardise on zerolog.
//
//	TRACE (-1) → DEBUG (0) → INFO (1) → WARN (2) → ERROR (3)
package zlog

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aussiebroadwan/authclient/pkg/slogx"
)

// Options controls logger construction.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty enables human-friendly console output.
	Pretty bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a zerolog logger configured from opts. Unlike a process-wide
// singleton it leaves zerolog's global level untouched.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a string to a zerolog.Level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Adapt exposes l as a slogx.Logger. Arguments are read as alternating
// key/value pairs, the same convention log/slog uses.
func Adapt(l zerolog.Logger) slogx.Logger {
	return adapter{l: l}
}

type adapter struct {
	l zerolog.Logger
}

func (a adapter) Debug(msg string, args ...any) {
	a.l.Debug().Fields(args).Msg(msg)
}

func (a adapter) Error(msg string, err error, args ...any) {
	a.l.Error().Err(err).Fields(args).Msg(msg)
}
