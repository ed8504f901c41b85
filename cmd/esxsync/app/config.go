package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/correlate"
	"github.com/agentstation/esxsync/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Dashboard API
	APIKey      string
	BaseURL     string
	AuthScheme  string
	HTTPTimeout time.Duration
	MaxRetries  int

	// Sync defaults
	Organization string
	MatchMode    string
	Timeout      time.Duration
	TempDir      string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
	LogFile   string
}

// envBindings maps config keys to the environment variables that set them.
// The first variable listed wins when several are set.
var envBindings = map[string][]string{
	"meraki_api_key":         {"MERAKI_API_KEY", "MERAKI_DASHBOARD_API_KEY"},
	"meraki_base_url":        {"MERAKI_BASE_URL"},
	"auth_scheme":            {"MERAKI_AUTH_SCHEME"},
	"organization":           {"MERAKI_ORGANIZATION", "ESXSYNC_ORGANIZATION"},
	"http_timeout":           {"ESXSYNC_HTTP_TIMEOUT"},
	"max_rate_limit_retries": {"ESXSYNC_MAX_RATE_LIMIT_RETRIES"},
	"match_mode":             {"ESXSYNC_MATCH_MODE"},
	"timeout":                {"ESXSYNC_TIMEOUT"},
	"temp_dir":               {"ESXSYNC_TEMP_DIR"},
	"format":                 {"ESXSYNC_FORMAT"},
	"no_color":               {"NO_COLOR"},
	"log_level":              {"LOG_LEVEL"},
	"log_format":             {"LOG_FORMAT"},
	"log_output":             {"LOG_OUTPUT"},
	"log_file":               {"ESXSYNC_LOG_FILE"},
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (configFile, or ~/.esxsync.yaml / ./.esxsync.yaml)
//  5. Defaults
//
// A missing default config file is not an error; an explicit one is.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, errors.NewConfigError("env", "failed to bind "+key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", "failed to read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".esxsync")
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		APIKey:      v.GetString("meraki_api_key"),
		BaseURL:     v.GetString("meraki_base_url"),
		AuthScheme:  strings.ToLower(v.GetString("auth_scheme")),
		HTTPTimeout: v.GetDuration("http_timeout"),
		MaxRetries:  v.GetInt("max_rate_limit_retries"),

		Organization: v.GetString("organization"),
		MatchMode:    v.GetString("match_mode"),
		Timeout:      v.GetDuration("timeout"),
		TempDir:      expandHome(v.GetString("temp_dir")),

		// LogLevel stays empty unless set so -v/-q can take effect
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
		LogFile:   expandHome(v.GetString("log_file")),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("meraki_base_url", constants.MerakiBaseURL)
	v.SetDefault("auth_scheme", "header")
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("max_rate_limit_retries", constants.MaxRateLimitRetries)
	v.SetDefault("match_mode", string(correlate.DefaultMatchMode))
	v.SetDefault("timeout", constants.CommandTimeout)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Flags are the values of the persistent root flags.
type Flags struct {
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string
	Token    string
	LogFile  string
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over config files and environment variables. Empty string
// flags leave the configured value alone.
func (c *Config) UpdateFromFlags(f Flags) {
	c.Verbose = c.Verbose || f.Verbose
	c.Quiet = c.Quiet || f.Quiet
	c.NoColor = c.NoColor || f.NoColor
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.Token != "" {
		c.APIKey = f.Token
	}
	if f.LogFile != "" {
		c.LogFile = expandHome(f.LogFile)
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set, so .env.local
// only fills what .env left empty.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
