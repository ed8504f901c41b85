package syncer

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/esxsync/pkg/esx"
)

// Result represents the outcome of a sync run.
type Result struct {
	RunID   string `json:"runId" yaml:"runId"`
	Project string `json:"project" yaml:"project"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty"` // Empty on dry runs
	DryRun  bool   `json:"dryRun" yaml:"dryRun"`

	StartedAt  utc.Time `json:"startedAt" yaml:"startedAt"`
	FinishedAt utc.Time `json:"finishedAt" yaml:"finishedAt"`

	// Counts
	Devices     int `json:"devices" yaml:"devices"`         // Devices returned by the Dashboard
	Assignments int `json:"assignments" yaml:"assignments"` // Devices with a BSSID
	Matched     int `json:"matched" yaml:"matched"`         // Names staged
	Missed      int `json:"missed" yaml:"missed"`           // Names that resolved to nothing
	Ambiguous   int `json:"ambiguous" yaml:"ambiguous"`     // Names that lost to an earlier one
	Models      int `json:"models" yaml:"models"`           // Models staged

	Plan []esx.PlanEntry `json:"plan" yaml:"plan"`
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Time.Sub(r.StartedAt.Time)
}

// HasChanges reports whether the plan stages anything.
func (r *Result) HasChanges() bool {
	return len(r.Plan) > 0
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return fmt.Sprintf("No access points matched (%d devices, %d with BSSID)", r.Devices, r.Assignments)
	}

	summary := fmt.Sprintf("%d access points renamed, %d models updated, %d missed, %d ambiguous",
		r.Matched, r.Models, r.Missed, r.Ambiguous)

	var parts []string
	if r.DryRun {
		parts = append(parts, "(Dry run)")
	} else if r.Output != "" {
		parts = append(parts, "-> "+r.Output)
	}
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}
	return summary
}
