// Package report defines the observer interface the correlation engine and
// the project rewriter use for diagnostic events. Callers decide where the
// events go: a zerolog logger, a metrics collector, a test recorder.
package report

import (
	"github.com/rs/zerolog"
)

// Kind classifies an event.
type Kind string

// Event kinds.
const (
	// KindMatch is a name or model staged into the plan.
	KindMatch Kind = "match"
	// KindMiss is a name/BSSID pair that resolved to no access point.
	KindMiss Kind = "miss"
	// KindAmbiguous is a second candidate for an already resolved target.
	KindAmbiguous Kind = "ambiguous"
	// KindApplied is a plan entry written to the access point document.
	KindApplied Kind = "applied"
	// KindSkipped is a plan field that was not applied.
	KindSkipped Kind = "skipped"
	// KindCleanup is the removal of the run's working directory.
	KindCleanup Kind = "cleanup"
)

// Stage names where in the BSSID -> measurement -> radio -> access point
// chain an event happened.
type Stage string

// Correlation stages.
const (
	StageMeasurement Stage = "measurement"
	StageRadio       Stage = "measured_radio"
	StageAccessPoint Stage = "access_point"
	StageModel       Stage = "model"
	StageRewrite     Stage = "rewrite"
)

// Event is a single diagnostic event.
type Event struct {
	Kind          Kind
	Stage         Stage
	Name          string
	BSSID         string
	MAC           string
	MeasurementID string
	AccessPointID string
	Model         string
	Message       string
	Err           error
}

// Reporter receives diagnostic events.
type Reporter interface {
	Report(Event)
}

// Func adapts a function to the Reporter interface.
type Func func(Event)

// Report calls f.
func (f Func) Report(e Event) { f(e) }

// Nop discards all events.
var Nop Reporter = Func(func(Event) {})

// Multi fans events out to every reporter in order.
func Multi(reporters ...Reporter) Reporter {
	return Func(func(e Event) {
		for _, r := range reporters {
			if r != nil {
				r.Report(e)
			}
		}
	})
}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop
	}
	return r
}

// Log returns a Reporter writing events to logger. Misses and ambiguous
// matches are warnings, everything else is debug.
func Log(logger *zerolog.Logger) Reporter {
	if logger == nil {
		return Nop
	}
	return Func(func(e Event) {
		var ev *zerolog.Event
		switch e.Kind {
		case KindMiss, KindAmbiguous:
			ev = logger.Warn()
		default:
			ev = logger.Debug()
		}
		ev = ev.Str("event", string(e.Kind))
		if e.Stage != "" {
			ev = ev.Str("stage", string(e.Stage))
		}
		for _, f := range [...]struct{ key, value string }{
			{"name", e.Name},
			{"bssid", e.BSSID},
			{"mac", e.MAC},
			{"measurement_id", e.MeasurementID},
			{"access_point", e.AccessPointID},
			{"model", e.Model},
		} {
			if f.value != "" {
				ev = ev.Str(f.key, f.value)
			}
		}
		if e.Err != nil {
			ev = ev.Err(e.Err)
		}
		ev.Msg(e.Message)
	})
}

// Recorder keeps every event in memory.
type Recorder struct {
	Events []Event
}

// Report implements Reporter.
func (r *Recorder) Report(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded events of the given kind.
func (r *Recorder) Filter(kind Kind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
