// Package correlate resolves Dashboard device names to Ekahau access points
// by hardware address and stages the resulting renames in an esx.Plan.
//
// A device BSSID is reduced to a key (see MatchMode), the key is searched
// for in the project's measurement MACs, the measurement is linked to its
// measured radio and the radio to its access point. The first measurement
// in document order whose chain resolves wins.
package correlate

import (
	"fmt"

	"github.com/agentstation/esxsync/pkg/devices"
	"github.com/agentstation/esxsync/pkg/esx"
	"github.com/agentstation/esxsync/pkg/report"
)

// Option configures Correlate.
type Option func(*options)

type options struct {
	mode     MatchMode
	reporter report.Reporter
}

// WithMatchMode selects the BSSID normalization.
func WithMatchMode(m MatchMode) Option {
	return func(o *options) { o.mode = m }
}

// WithReporter receives match, miss and ambiguity events.
func WithReporter(r report.Reporter) Option {
	return func(o *options) { o.reporter = r }
}

// Correlate builds the assignment plan for docs.
//
// Every assignment is resolved to at most one access point and staged as a
// rename. An assignment that does not resolve is reported as a miss and
// skipped. When two names resolve to the same access point the first one
// keeps it. If models is non-empty, every access point marked mine whose
// current name is a key of models is staged with that model.
//
// Correlate never modifies docs.
func Correlate(assignments []devices.Assignment, models map[string]string, docs *esx.Documents, opts ...Option) (*esx.Plan, error) {
	o := options{mode: DefaultMatchMode}
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := ParseMatchMode(string(o.mode)); err != nil {
		return nil, err
	}
	o.reporter = report.OrNop(o.reporter)

	idx := newIndex(docs)
	plan := esx.NewPlan()
	owner := make(map[string]string)

	for _, a := range assignments {
		resolveName(idx, plan, owner, a, o)
	}
	if len(models) > 0 && docs != nil && docs.AccessPoints != nil {
		stageModels(plan, docs.AccessPoints, models, o.reporter)
	}
	return plan, nil
}

func resolveName(idx *index, plan *esx.Plan, owner map[string]string, a devices.Assignment, o options) {
	key := o.mode.Key(a.BSSID)
	miss := report.Event{Kind: report.KindMiss, Name: a.Name, BSSID: a.BSSID}

	found := idx.candidates(key)
	if len(found) == 0 {
		miss.Stage = report.StageMeasurement
		miss.Message = fmt.Sprintf("no measurement MAC contains %q", key)
		o.reporter.Report(miss)
		return
	}

	// Report the stage the first candidate got furthest to when nothing
	// resolves.
	var first *report.Event
	for _, m := range found {
		apID, ok := idx.radioByMeasurement[m.id]
		if !ok {
			if first == nil {
				e := miss
				e.Stage, e.MAC, e.MeasurementID = report.StageRadio, m.mac, m.id
				e.Message = "measurement is not linked to a measured radio"
				first = &e
			}
			continue
		}
		ap, ok := idx.accessPoints[apID]
		if !ok {
			if first == nil {
				e := miss
				e.Stage, e.MAC, e.MeasurementID, e.AccessPointID = report.StageAccessPoint, m.mac, m.id, apID
				e.Message = "measured radio references an unknown access point"
				first = &e
			}
			continue
		}

		if !plan.StageName(ap.ID, a.Name) {
			o.reporter.Report(report.Event{
				Kind:          report.KindAmbiguous,
				Stage:         report.StageAccessPoint,
				Name:          a.Name,
				BSSID:         a.BSSID,
				MAC:           m.mac,
				MeasurementID: m.id,
				AccessPointID: ap.ID,
				Message:       fmt.Sprintf("access point already assigned to %q", owner[ap.ID]),
			})
			return
		}
		owner[ap.ID] = a.Name
		o.reporter.Report(report.Event{
			Kind:          report.KindMatch,
			Stage:         report.StageAccessPoint,
			Name:          a.Name,
			BSSID:         a.BSSID,
			MAC:           m.mac,
			MeasurementID: m.id,
			AccessPointID: ap.ID,
			Message:       fmt.Sprintf("renaming %q", ap.Name),
		})
		return
	}
	o.reporter.Report(*first)
}

func stageModels(plan *esx.Plan, doc *esx.AccessPointsDocument, models map[string]string, r report.Reporter) {
	for _, ap := range doc.AccessPoints {
		model, ok := models[ap.Name]
		if !ok || model == "" {
			continue
		}
		if !ap.Mine {
			r.Report(report.Event{
				Kind:          report.KindSkipped,
				Stage:         report.StageModel,
				Name:          ap.Name,
				AccessPointID: ap.ID,
				Model:         model,
				Message:       "access point is not marked mine",
			})
			continue
		}
		plan.StageModel(ap.ID, model)
		r.Report(report.Event{
			Kind:          report.KindMatch,
			Stage:         report.StageModel,
			Name:          ap.Name,
			AccessPointID: ap.ID,
			Model:         model,
			Message:       fmt.Sprintf("model %q -> %q", ap.Model, model),
		})
	}
}
