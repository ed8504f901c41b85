// Package app provides the application context and dependency management
// for the esxsync CLI. Configuration, logging and the Dashboard client live
// here and are handed to the command packages through the
// application.Application interface.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/esxsync/internal/cmd/application"
	"github.com/agentstation/esxsync/internal/sources/meraki"
	"github.com/agentstation/esxsync/internal/transport"
	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/correlate"
	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/syncer"
)

// App represents the esxsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Dashboard client (lazy-initialized, singleton)
	mu        sync.Mutex
	directory application.Directory
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration, which can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Directory returns the Dashboard client, creating it on first use.
func (a *App) Directory() (application.Directory, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.directory != nil {
		return a.directory, nil
	}

	if a.config.APIKey == "" {
		return nil, errors.NewAuthenticationError(constants.MerakiProvider, "api_key",
			"set MERAKI_API_KEY or pass --token", errors.ErrAPIKeyRequired)
	}

	scheme, err := parseAuthScheme(a.config.AuthScheme)
	if err != nil {
		return nil, err
	}

	a.directory = meraki.NewClient(a.config.APIKey,
		meraki.WithBaseURL(a.config.BaseURL),
		meraki.WithAuthScheme(scheme),
		meraki.WithTimeout(a.config.HTTPTimeout),
		meraki.WithMaxRetries(a.config.MaxRetries),
	)
	return a.directory, nil
}

// SyncOptions returns the sync defaults taken from configuration.
func (a *App) SyncOptions() []syncer.Option {
	return []syncer.Option{
		syncer.WithOrganization(a.config.Organization),
		syncer.WithMatchMode(correlate.MatchMode(a.config.MatchMode)),
		syncer.WithTimeout(a.config.Timeout),
		syncer.WithTempDir(a.config.TempDir),
	}
}

func parseAuthScheme(s string) (transport.AuthScheme, error) {
	switch scheme := transport.AuthScheme(s); scheme {
	case "", transport.AuthSchemeHeader:
		return transport.AuthSchemeHeader, nil
	case transport.AuthSchemeBearer:
		return scheme, nil
	default:
		return "", errors.NewConfigError("auth_scheme", "unknown scheme "+s+" (header, bearer)", nil)
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithDirectory sets a custom Dashboard client (useful for testing).
func WithDirectory(dir application.Directory) Option {
	return func(a *App) error {
		a.directory = dir
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
