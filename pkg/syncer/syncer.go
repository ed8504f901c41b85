package syncer

import (
	"context"
	"fmt"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/esxsync/pkg/correlate"
	"github.com/agentstation/esxsync/pkg/devices"
	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/esx"
	"github.com/agentstation/esxsync/pkg/logging"
	"github.com/agentstation/esxsync/pkg/report"
)

// Directory is the source of device names and BSSIDs.
type Directory interface {
	Devices(ctx context.Context, q devices.Query) (*devices.Set, error)
}

// Run performs a sync with dir as the device source.
//
// When no device has a BSSID the project is not touched and the returned
// error wraps errors.ErrNoAssignments; the result is still returned so the
// caller can report the counts.
func Run(ctx context.Context, dir Directory, opts ...Option) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()

	result := &Result{
		RunID:     uuid.NewString(),
		Project:   options.ProjectPath,
		DryRun:    options.DryRun,
		StartedAt: utc.Now(),
	}
	defer func() { result.FinishedAt = utc.Now() }()

	ctx = logging.WithProject(logging.WithRun(ctx, result.RunID), options.ProjectPath)
	logger := logging.FromContext(ctx)

	var recorder report.Recorder
	reporter := report.Multi(&recorder, report.Log(logger), options.Reporter)

	// Step 3: Load devices and their BSSIDs
	set, err := dir.Devices(ctx, devices.Query{Organization: options.Organization, BSSIDs: true})
	if err != nil {
		return nil, err
	}
	assignments := set.Assignments()
	result.Devices = set.Len()
	result.Assignments = len(assignments)
	logger.Info().Int("devices", result.Devices).Int("bssids", result.Assignments).Msg("Loaded devices")

	if len(assignments) == 0 {
		return result, fmt.Errorf("no device returned a BSSID: %w", errors.ErrNoAssignments)
	}

	var models map[string]string
	if options.Models {
		models = set.Models()
	}

	// Step 4: Correlate against the project documents
	docs, err := esx.ReadDocuments(options.ProjectPath)
	if err != nil {
		return nil, err
	}
	plan, err := correlate.Correlate(assignments, models, docs,
		correlate.WithMatchMode(options.MatchMode),
		correlate.WithReporter(reporter),
	)
	if err != nil {
		return nil, err
	}
	result.Plan = plan.Entries()
	for _, e := range recorder.Filter(report.KindMatch) {
		switch e.Stage {
		case report.StageModel:
			result.Models++
		case report.StageAccessPoint:
			result.Matched++
		}
	}
	result.Missed = recorder.Count(report.KindMiss)
	result.Ambiguous = recorder.Count(report.KindAmbiguous)

	if options.DryRun {
		logger.Info().Int("entries", plan.Len()).Msg("Dry run, project not written")
		return result, nil
	}

	// Step 5: Rewrite the project
	out, err := esx.Rewrite(options.ProjectPath, plan,
		esx.WithRunID(result.RunID),
		esx.WithTempDir(options.TempDir),
		esx.WithOutputPath(options.OutputPath),
		esx.WithReporter(reporter),
	)
	if err != nil {
		return nil, err
	}
	result.Output = out

	logger.Info().
		Int("renamed", result.Matched).
		Int("models", result.Models).
		Int("missed", result.Missed).
		Str("output", out).
		Msg("Project written")
	return result, nil
}
