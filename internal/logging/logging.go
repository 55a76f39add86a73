// Package logging provides the context-scoped logger used across the
// pipeline. Stages never hold a logger field; they take it from the context,
// so callers control verbosity and sinks uniformly.
package logging

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a structured logger. Development mode uses a console
// encoder and debug level; production mode uses JSON at info level, lowered
// further by verbosity.
func NewLogger(development bool, verbosity int) logr.Logger {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if verbosity > 0 {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	}
	z, err := cfg.Build()
	if err != nil {
		// Config is built from constants; a failure here is a programming
		// error.
		panic(err)
	}
	return zapr.NewLogger(z)
}

// NewTestLogger returns a development logger for tests and suites.
func NewTestLogger() logr.Logger {
	return NewLogger(true, 1)
}

// IntoContext returns a context carrying the logger.
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// FromContext returns the logger carried by ctx, or a discarding logger.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}
