package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger stores logger in ctx. A nil logger stores Default().
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or Default().
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithField returns a ctx whose logger carries key=value.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := addField(FromContext(ctx).With(), key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithRun tags log lines with the sync run id.
func WithRun(ctx context.Context, runID string) context.Context {
	return WithField(ctx, "run_id", runID)
}

// WithProject tags log lines with the project archive path.
func WithProject(ctx context.Context, path string) context.Context {
	return WithField(ctx, "project", path)
}

// WithOrganization tags log lines with a Dashboard organization name.
func WithOrganization(ctx context.Context, name string) context.Context {
	return WithField(ctx, "organization", name)
}

// WithDevice tags log lines with a device serial.
func WithDevice(ctx context.Context, serial string) context.Context {
	return WithField(ctx, "serial", serial)
}
