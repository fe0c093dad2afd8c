// Package cli carries the loaded config and logger from the root command to
// its subcommands.
package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/klytics/stallkit/internal/config"
	"github.com/klytics/stallkit/internal/formats/convert"
	"github.com/klytics/stallkit/internal/sanitize"
)

// Env is what every command needs besides its own flags.
type Env struct {
	Config *config.Config
	Logger *zap.Logger
}

type envKey struct{}

// WithEnv returns a context carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// FromContext returns the Env stored by WithEnv, or built-in defaults with a
// no-op logger when none was stored.
func FromContext(ctx context.Context) *Env {
	if ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok && env != nil {
			return env
		}
	}
	return &Env{
		Config: &config.Config{OutputDir: "output", FallbackName: convert.DefaultFallbackName},
		Logger: zap.NewNop(),
	}
}

// ConvertOptions builds converter options from config; a non-empty sheet
// overrides the configured one.
func (e *Env) ConvertOptions(sheet string) convert.Options {
	if sheet == "" {
		sheet = e.Config.Sheet
	}
	return convert.Options{
		Sheet:        sheet,
		FallbackName: e.Config.FallbackName,
		Sanitize:     sanitize.Options{PreserveUnderscoreRuns: e.Config.Sanitize.PreserveUnderscoreRuns},
		Logger:       e.Logger,
	}
}

// reportedError marks an error whose message the command already printed.
type reportedError struct{ err error }

func (r *reportedError) Error() string { return r.err.Error() }
func (r *reportedError) Unwrap() error { return r.err }

// Reported wraps err so the root command exits non-zero without printing it again.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was wrapped by Reported.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
