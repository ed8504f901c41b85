package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/errors"
)

// TestLoadConfig verifies defaults.
func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.BaseURL != constants.MerakiBaseURL {
		t.Errorf("BaseURL = %s, want %s", config.BaseURL, constants.MerakiBaseURL)
	}
	if config.HTTPTimeout != constants.DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %s, want %s", config.HTTPTimeout, constants.DefaultHTTPTimeout)
	}
	if config.MaxRetries != constants.MaxRateLimitRetries {
		t.Errorf("MaxRetries = %d, want %d", config.MaxRetries, constants.MaxRateLimitRetries)
	}
	if config.MatchMode != "suffix" {
		t.Errorf("MatchMode = %s, want suffix", config.MatchMode)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MERAKI_API_KEY", "")
	t.Setenv("MERAKI_DASHBOARD_API_KEY", "dashboard-key")
	t.Setenv("MERAKI_ORGANIZATION", "Acme Campus")
	t.Setenv("ESXSYNC_MATCH_MODE", "trim-last")
	t.Setenv("ESXSYNC_HTTP_TIMEOUT", "5s")
	t.Setenv("ESXSYNC_MAX_RATE_LIMIT_RETRIES", "2")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.APIKey != "dashboard-key" {
		t.Errorf("APIKey = %q, want the MERAKI_DASHBOARD_API_KEY alias", config.APIKey)
	}
	if config.Organization != "Acme Campus" {
		t.Errorf("Organization = %q, want Acme Campus", config.Organization)
	}
	if config.MatchMode != "trim-last" {
		t.Errorf("MatchMode = %q, want trim-last", config.MatchMode)
	}
	if config.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %s, want 5s", config.HTTPTimeout)
	}
	if config.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", config.MaxRetries)
	}
}

// TestConfig_PrimaryKeyWins verifies MERAKI_API_KEY takes precedence over the alias.
func TestConfig_PrimaryKeyWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MERAKI_API_KEY", "primary")
	t.Setenv("MERAKI_DASHBOARD_API_KEY", "alias")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.APIKey != "primary" {
		t.Errorf("APIKey = %q, want primary", config.APIKey)
	}
}

// TestConfig_File verifies an explicit config file is read and env still wins.
func TestConfig_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MERAKI_API_KEY", "")
	t.Setenv("MERAKI_DASHBOARD_API_KEY", "")
	t.Setenv("MERAKI_ORGANIZATION", "From Env")

	path := filepath.Join(t.TempDir(), "esxsync.yaml")
	body := "meraki_api_key: file-key\norganization: From File\ntimeout: 90s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}
	if config.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", config.APIKey)
	}
	if config.Organization != "From Env" {
		t.Errorf("Organization = %q, want env to override the file", config.Organization)
	}
	if config.Timeout != 90*time.Second {
		t.Errorf("Timeout = %s, want 90s", config.Timeout)
	}
}

// TestConfig_MissingFile verifies an explicit config file must exist.
func TestConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() succeeded for a missing file")
	}
	if code := errors.ExitCode(err); code != errors.ExitInvalidInput {
		t.Errorf("ExitCode() = %d, want %d", code, errors.ExitInvalidInput)
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", APIKey: "env-key", LogLevel: "warn"}

	config.UpdateFromFlags(Flags{Verbose: true, Token: "flag-key", LogFile: "~/esxsync.log"})

	if !config.Verbose {
		t.Error("Verbose not set")
	}
	if config.Format != "yaml" {
		t.Errorf("Format = %s, empty flag should keep yaml", config.Format)
	}
	if config.APIKey != "flag-key" {
		t.Errorf("APIKey = %s, want flag-key", config.APIKey)
	}
	if config.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn", config.LogLevel)
	}
	if home, err := os.UserHomeDir(); err == nil && config.LogFile != filepath.Join(home, "esxsync.log") {
		t.Errorf("LogFile = %s, want it under %s", config.LogFile, home)
	}
}
