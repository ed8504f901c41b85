package esx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/report"
)

// Option configures Rewrite.
type Option func(*options)

type options struct {
	tempDir  string
	runID    string
	output   string
	reporter report.Reporter
}

// WithTempDir sets the parent directory of the run's working directory.
// Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(o *options) { o.tempDir = dir }
}

// WithRunID names the working directory after a run id instead of a fresh one.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithOutputPath overrides the default <project>_modified.esx destination.
func WithOutputPath(path string) Option {
	return func(o *options) { o.output = path }
}

// WithReporter receives apply and cleanup events.
func WithReporter(r report.Reporter) Option {
	return func(o *options) { o.reporter = r }
}

// Rewrite applies plan to the project at projectPath and writes the result
// as a new project archive, returning its path.
//
// The archive is extracted into a working directory unique to this call,
// accessPoints.json is rewritten there, and the whole tree is zipped next to
// the source. The working directory is always removed. On failure no output
// archive is left behind.
func Rewrite(projectPath string, plan *Plan, opts ...Option) (out string, err error) {
	o := options{runID: uuid.NewString()}
	for _, opt := range opts {
		opt(&o)
	}
	o.reporter = report.OrNop(o.reporter)
	if plan == nil {
		plan = NewPlan()
	}

	out = o.output
	if out == "" {
		out = OutputPath(projectPath)
	}

	workDir, err := os.MkdirTemp(o.tempDir, constants.WorkDirPrefix+o.runID+"-")
	if err != nil {
		return "", errors.WrapIO("create", "working directory", err)
	}
	defer func() {
		cerr := os.RemoveAll(workDir)
		o.reporter.Report(report.Event{
			Kind:    report.KindCleanup,
			Stage:   report.StageRewrite,
			Message: "removed working directory " + workDir,
			Err:     cerr,
		})
		if err == nil && cerr != nil {
			err = errors.WrapIO("delete", workDir, cerr)
		}
	}()

	if err := extract(projectPath, workDir); err != nil {
		return "", errors.WrapProject("extract", projectPath, err)
	}

	docs, err := LoadDocuments(workDir)
	if err != nil {
		return "", err
	}

	applied, err := plan.Apply(docs.AccessPoints)
	if err != nil {
		return "", errors.WrapProject("apply plan", projectPath, err)
	}
	for _, e := range plan.Entries() {
		o.reporter.Report(report.Event{
			Kind:          report.KindApplied,
			Stage:         report.StageRewrite,
			Name:          e.Name,
			Model:         e.Model,
			AccessPointID: e.AccessPointID,
			Message:       "applied assignment",
		})
	}

	data, err := MarshalDocument(docs.AccessPoints)
	if err != nil {
		return "", errors.WrapParse("json", constants.AccessPointsDocument, err)
	}
	apPath := filepath.Join(workDir, constants.AccessPointsDocument)
	if err := os.WriteFile(apPath, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", apPath, err)
	}

	if err := writeArchive(workDir, out); err != nil {
		return "", errors.WrapProject("repack", projectPath, err)
	}

	o.reporter.Report(report.Event{
		Kind:    report.KindApplied,
		Stage:   report.StageRewrite,
		Message: fmt.Sprintf("wrote project %s with %d assignments", out, applied),
	})
	return out, nil
}

// writeArchive zips workDir into a uniquely named staging file beside out and
// renames it into place once complete. Nothing else in that directory is
// touched, and a failed write leaves no staging file behind.
func writeArchive(workDir, out string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(out), "."+filepath.Base(out)+"-*.zip")
	if err != nil {
		return errors.WrapIO("create", out, err)
	}
	staging := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(staging)
		}
	}()

	if err = pack(workDir, f, staging); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.WrapIO("close", staging, err)
	}
	if err = os.Chmod(staging, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", staging, err)
	}
	if err = os.Rename(staging, out); err != nil {
		return errors.WrapIO("rename", staging, err)
	}
	return nil
}
