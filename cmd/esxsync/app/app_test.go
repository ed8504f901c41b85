package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/esxsync/internal/cmd/application"
	"github.com/agentstation/esxsync/internal/sources/meraki"
	"github.com/agentstation/esxsync/pkg/errors"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Directory_RequiresKey verifies a missing API key fails before any request.
func TestApp_Directory_RequiresKey(t *testing.T) {
	app, err := New("dev", "", "", "", WithConfig(&Config{}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = app.Directory()
	if !errors.IsAPIKeyError(err) {
		t.Fatalf("Directory() error = %v, want API key error", err)
	}
	if code := errors.ExitCode(err); code != errors.ExitRemoteAPI {
		t.Errorf("ExitCode() = %d, want %d", code, errors.ExitRemoteAPI)
	}
}

// TestApp_Directory_Singleton verifies that Directory() returns the same client.
func TestApp_Directory_Singleton(t *testing.T) {
	app, err := New("dev", "", "", "", WithConfig(&Config{APIKey: "key", AuthScheme: "bearer"}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var wg sync.WaitGroup
	dirs := make([]application.Directory, 10)
	for i := range dirs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dir, err := app.Directory()
			if err != nil {
				t.Errorf("Directory() failed: %v", err)
			}
			dirs[i] = dir
		}(i)
	}
	wg.Wait()

	if _, ok := dirs[0].(*meraki.Client); !ok {
		t.Fatalf("Directory() = %T, want *meraki.Client", dirs[0])
	}
	for i, dir := range dirs {
		if dir != dirs[0] {
			t.Errorf("Directory() call %d returned a different instance", i)
		}
	}
}

// TestApp_Directory_BadScheme verifies unknown auth schemes are config errors.
func TestApp_Directory_BadScheme(t *testing.T) {
	app, err := New("dev", "", "", "", WithConfig(&Config{APIKey: "key", AuthScheme: "basic"}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = app.Directory()
	if code := errors.ExitCode(err); code != errors.ExitInvalidInput {
		t.Errorf("ExitCode() = %d, want %d (err %v)", code, errors.ExitInvalidInput, err)
	}
}

// TestApp_WithOptions verifies functional options.
func TestApp_WithOptions(t *testing.T) {
	logger := zerolog.Nop()
	dir := &application.MockDirectory{}

	app, err := New("dev", "", "", "", WithLogger(&logger), WithDirectory(dir))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Logger() != &logger {
		t.Error("WithLogger() not applied")
	}
	got, err := app.Directory()
	if err != nil || got != dir {
		t.Errorf("Directory() = %v, %v; want the injected directory", got, err)
	}
}

// TestApp_SyncOptions verifies config values reach the sync defaults.
func TestApp_SyncOptions(t *testing.T) {
	app, err := New("dev", "", "", "", WithConfig(&Config{Organization: "Acme Campus", MatchMode: "trim-last"}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if n := len(app.SyncOptions()); n != 4 {
		t.Errorf("SyncOptions() returned %d options, want 4", n)
	}
}

// TestApp_Execute runs commands through the root command.
func TestApp_Execute(t *testing.T) {
	dir := &application.MockDirectory{Orgs: []meraki.Organization{{ID: "2930418", Name: "Acme Campus"}}}
	app, err := New("1.2.3", "abc", "2024-01-01", "test", WithConfig(&Config{}), WithDirectory(dir))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	t.Run("version", func(t *testing.T) {
		root := app.createRootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"version", "-v", "--log-level", "error"})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("version failed: %v", err)
		}
		if !strings.Contains(out.String(), "esxsync 1.2.3") || !strings.Contains(out.String(), "commit:   abc") {
			t.Errorf("unexpected version output %q", out.String())
		}
	})

	t.Run("orgs as json", func(t *testing.T) {
		root := app.createRootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"orgs", "-o", "json", "--token", "from-flag"})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("orgs failed: %v", err)
		}
		if !strings.Contains(out.String(), `"name": "Acme Campus"`) {
			t.Errorf("unexpected orgs output %q", out.String())
		}
		if app.Config().APIKey != "from-flag" {
			t.Errorf("APIKey = %q, want from-flag", app.Config().APIKey)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		root := app.createRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{"orgs", "-o", "csv"})
		err := root.ExecuteContext(context.Background())
		if !errors.IsValidationError(err) {
			t.Errorf("Execute() error = %v, want validation error", err)
		}
	})
}
