package app

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/esxsync/pkg/logging"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger builds the run logger from the resolved configuration.
// A --log-file replaces the configured output and is written as JSON
// unless a format was asked for. Problems with the level settings are
// reported as warnings on the new logger.
func NewLogger(config *Config) zerolog.Logger {
	level, warning := determineLogLevel(config)

	logConfig := &logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	}
	if config.LogFile != "" {
		logConfig.Output = config.LogFile
		if logConfig.Format == "" || logConfig.Format == "auto" {
			logConfig.Format = "json"
		}
	}

	logger := logging.NewLoggerFromConfig(logConfig)
	if warning != "" {
		logger.Warn().Msg(warning)
	}
	return logger
}

// determineLogLevel resolves the level. An explicit --log-level (or
// LOG_LEVEL) wins, then --quiet, then --verbose, then info.
func determineLogLevel(config *Config) (level, warning string) {
	switch {
	case config.LogLevel != "":
		if !slices.Contains(logLevels, config.LogLevel) {
			return "info", fmt.Sprintf("invalid log level %q, using info", config.LogLevel)
		}
		return config.LogLevel, ""
	case config.Quiet && config.Verbose:
		return "warn", "both --verbose and --quiet given, using --quiet"
	case config.Quiet:
		return "warn", ""
	case config.Verbose:
		return "debug", ""
	}
	return "info", ""
}
