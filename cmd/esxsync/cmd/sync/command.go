// Package sync implements the sync command.
package sync

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/esxsync/internal/cmd/alerts"
	"github.com/agentstation/esxsync/internal/cmd/application"
	"github.com/agentstation/esxsync/internal/cmd/output"
	"github.com/agentstation/esxsync/internal/metrics"
	"github.com/agentstation/esxsync/pkg/correlate"
	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/logging"
	"github.com/agentstation/esxsync/pkg/report"
	"github.com/agentstation/esxsync/pkg/syncer"
)

// Flags holds the sync command flags.
type Flags struct {
	Project     string
	Output      string
	Org         string
	Models      bool
	DryRun      bool
	MatchMode   string
	MetricsFile string
}

// NewCommand creates the sync command.
func NewCommand(app application.Application) *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:     "sync [project.esx]",
		GroupID: "core",
		Short:   "Rename project access points after Dashboard devices",
		Long: `Sync fetches every wireless device and its BSSID from the Meraki Dashboard,
finds the survey measurement recorded for that BSSID and renames the access
point the measurement belongs to. With --model the Dashboard model is copied
onto access points marked as the project's own.

The project itself is left untouched. The result is written next to it as
<project>.esx_modified.esx unless --out says otherwise.`,
		Example: `  esxsync sync --project site.esx                   # Rename access points
  esxsync sync site.esx --org "Acme Campus" --model  # One organization, models too
  esxsync sync site.esx --dry-run -o yaml            # Show the plan only
  esxsync sync site.esx --match-mode trim-last       # Drop the last BSSID digit instead`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if flags.Project != "" && flags.Project != args[0] {
					return errors.NewValidationError("project", args[0], "given both as argument and --project")
				}
				flags.Project = args[0]
			}
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Project, "project", "p", "", "Ekahau project (.esx) to read")
	cmd.Flags().StringVar(&flags.Output, "out", "", "where to write the result (default <project>_modified.esx)")
	cmd.Flags().StringVar(&flags.Org, "org", "", "only use devices of this organization (by name)")
	cmd.Flags().BoolVar(&flags.Models, "model", false, "also copy device models onto the project's own access points")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "print the plan without writing a project")
	cmd.Flags().StringVar(&flags.MatchMode, "match-mode", "", "BSSID matching: suffix (default) or trim-last")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags Flags) error {
	logger := app.Logger()
	ctx := logging.WithLogger(cmd.Context(), logger)
	format := output.Format(app.OutputFormat())

	dir, err := app.Directory()
	if err != nil {
		return err
	}

	m := metrics.New()
	var recorder report.Recorder

	opts := append(app.SyncOptions(), options(cmd, flags)...)
	opts = append(opts, syncer.WithReporter(report.Multi(m, &recorder)))

	started := time.Now()
	result, err := syncer.Run(ctx, dir, opts...)
	m.ObserveRun(started, time.Now(), err)
	if result != nil {
		m.Devices.Set(float64(result.Devices))
		m.Assignments.Set(float64(result.Assignments))
		m.PlanEntries.Set(float64(len(result.Plan)))
	}

	if flags.MetricsFile != "" {
		if werr := m.WriteTextfile(flags.MetricsFile); werr != nil {
			logger.Error().Err(werr).Str("path", flags.MetricsFile).Msg("Failed to write metrics")
		}
	}

	warnings := alerts.NewFormatWriter(cmd.ErrOrStderr(), format)
	if err != nil {
		if errors.IsNoAssignments(err) {
			_ = warnings.WriteAlert(alerts.NoWork())
		}
		return err
	}

	logger.Debug().Str("run_id", result.RunID).Dur("duration", result.Duration()).Msg("Sync finished")

	_ = alerts.WriteAll(warnings,
		alerts.FromEvents(report.KindMiss, recorder.Events),
		alerts.FromEvents(report.KindAmbiguous, recorder.Events),
	)

	if !format.IsTable() {
		return output.FormatAny(cmd.OutOrStdout(), format, result)
	}

	if result.HasChanges() {
		if err := output.FormatPlan(cmd.OutOrStdout(), format, result.Plan); err != nil {
			return err
		}
	}
	return alerts.NewFormatWriter(cmd.OutOrStdout(), format).WriteAlert(alerts.ForResult(result))
}

// options turns the flags the user actually set into sync options, so
// unset flags keep the configured defaults.
func options(cmd *cobra.Command, flags Flags) []syncer.Option {
	opts := []syncer.Option{
		syncer.WithProject(flags.Project),
		syncer.WithModels(flags.Models),
		syncer.WithDryRun(flags.DryRun),
	}
	if cmd.Flags().Changed("org") {
		opts = append(opts, syncer.WithOrganization(flags.Org))
	}
	if cmd.Flags().Changed("match-mode") {
		opts = append(opts, syncer.WithMatchMode(correlate.MatchMode(flags.MatchMode)))
	}
	if flags.Output != "" {
		opts = append(opts, syncer.WithOutputPath(flags.Output))
	}
	return opts
}
