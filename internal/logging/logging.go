// Package logging provides the structured logger ScanBridge's
// components share, wrapping github.com/rs/zerolog with the small set
// of conveniences the teacher's own log package offered: a global
// default level, a component-scoped child logger, and a context
// carrier so a call chain doesn't have to thread *zerolog.Logger
// through every function signature by hand.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var global zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	global = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Initialize configures the global logger's level and output. level
// is parsed with zerolog.ParseLevel ("debug", "info", "warn", "error",
// ...); an unrecognized level leaves the previous level in place.
func Initialize(level string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = global.GetLevel()
	}

	global = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(lvl)
}

// Get returns the global logger.
func Get() zerolog.Logger {
	return global
}

// Component returns a child logger tagged with the given component
// name, e.g. Component("registry") or Component("backend.escl").
func Component(name string) zerolog.Logger {
	return global.With().Str("component", name).Logger()
}

type ctxKey struct{}

// WithContext attaches logger to ctx, so it can be recovered with
// [FromContext] deeper in a call chain without passing it explicitly.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext recovers the logger attached by [WithContext], falling
// back to the global logger if none was attached.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return logger
	}
	return global
}
