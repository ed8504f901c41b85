// Package syncer runs a full sync: load devices from the Dashboard,
// correlate their BSSIDs with an Ekahau project and write the renamed
// project.
package syncer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/agentstation/esxsync/pkg/correlate"
	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/report"
)

// Options controls a sync run.
type Options struct {
	// Input selection
	ProjectPath  string // Ekahau project to read
	Organization string // Dashboard organization name (empty means all)

	// Behavior
	Models    bool                // Also sync access point models
	DryRun    bool                // Build the plan without writing a project
	MatchMode correlate.MatchMode // BSSID normalization
	Timeout   time.Duration       // Timeout for the whole run

	// Output control
	OutputPath string // Where to write the project (empty means <project>_modified.esx)
	TempDir    string // Parent of the working directory (empty means os.TempDir)

	Reporter report.Reporter
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		MatchMode: correlate.DefaultMatchMode,
	}
}

// Apply applies the given options to the sync options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks if the sync options are valid.
func (o *Options) Validate() error {
	if o.ProjectPath == "" {
		return &errors.ValidationError{
			Field:   "ProjectPath",
			Message: "project path is required",
		}
	}
	info, err := os.Stat(o.ProjectPath)
	if err != nil {
		return &errors.ValidationError{
			Field:   "ProjectPath",
			Value:   o.ProjectPath,
			Message: err.Error(),
		}
	}
	if info.IsDir() {
		return &errors.ValidationError{
			Field:   "ProjectPath",
			Value:   o.ProjectPath,
			Message: "project path is a directory",
		}
	}

	mode, err := correlate.ParseMatchMode(string(o.MatchMode))
	if err != nil {
		return err
	}
	o.MatchMode = mode

	if o.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   o.Timeout,
			Message: "timeout must be non-negative",
		}
	}

	if o.OutputPath != "" {
		dir := filepath.Dir(o.OutputPath)
		if _, err := os.Stat(dir); err != nil {
			return &errors.ValidationError{
				Field:   "OutputPath",
				Value:   o.OutputPath,
				Message: "output directory '" + dir + "' does not exist",
			}
		}
	}
	return nil
}

// WithProject sets the project to sync.
func WithProject(path string) Option {
	return func(o *Options) { o.ProjectPath = path }
}

// WithOrganization limits the run to one Dashboard organization.
func WithOrganization(name string) Option {
	return func(o *Options) { o.Organization = name }
}

// WithModels configures model sync.
func WithModels(models bool) Option {
	return func(o *Options) { o.Models = models }
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) { o.DryRun = dryRun }
}

// WithMatchMode configures BSSID normalization.
func WithMatchMode(m correlate.MatchMode) Option {
	return func(o *Options) { o.MatchMode = m }
}

// WithTimeout configures the run timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithOutputPath configures where the project is written.
func WithOutputPath(path string) Option {
	return func(o *Options) { o.OutputPath = path }
}

// WithTempDir configures the parent of the working directory.
func WithTempDir(dir string) Option {
	return func(o *Options) { o.TempDir = dir }
}

// WithReporter receives correlation and rewrite events.
func WithReporter(r report.Reporter) Option {
	return func(o *Options) { o.Reporter = r }
}
