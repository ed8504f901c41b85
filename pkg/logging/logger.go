// Package logging wires zerolog for esxsync.
//
// Terminals get the console writer and everything else gets JSON, which
// includes the optional log file that records each correlation decision of
// a run. Loggers travel through a context.Context so the fetch, correlate
// and rewrite stages log with the run's fields attached:
//
//	ctx = logging.WithRun(ctx, runID)
//	ctx = logging.WithProject(ctx, "site.esx")
//	logging.FromContext(ctx).Debug().Msg("Opening project")
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = NewLoggerFromConfig(configFromEnv())

// Default returns the process wide logger. Until SetDefault is called it
// follows LOG_LEVEL, LOG_FORMAT and NO_COLOR.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func configFromEnv() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	return cfg
}
