// Package metrics collects per-run counters for a sync and writes them in
// the Prometheus text format, for node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/report"
)

// Metrics bundles sync run metrics.
type Metrics struct {
	registry *prometheus.Registry

	EventsTotal    *prometheus.CounterVec
	RunsTotal      *prometheus.CounterVec
	RunDuration    prometheus.Gauge
	Devices        prometheus.Gauge
	Assignments    prometheus.Gauge
	PlanEntries    prometheus.Gauge
	LastSuccessful prometheus.Gauge
}

// New constructs metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esxsync_correlation_events_total",
				Help: "Correlation and rewrite events by kind and stage",
			},
			[]string{"kind", "stage"},
		),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esxsync_runs_total",
				Help: "Sync runs by status",
			},
			[]string{"status"},
		),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esxsync_run_duration_seconds",
			Help: "Duration of the last sync run in seconds",
		}),
		Devices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esxsync_devices",
			Help: "Wireless devices returned by the Dashboard",
		}),
		Assignments: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esxsync_bssid_assignments",
			Help: "Devices with a resolved BSSID",
		}),
		PlanEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esxsync_plan_entries",
			Help: "Access points with a staged change",
		}),
		LastSuccessful: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esxsync_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		}),
	}
	m.registry.MustRegister(
		m.EventsTotal,
		m.RunsTotal,
		m.RunDuration,
		m.Devices,
		m.Assignments,
		m.PlanEntries,
		m.LastSuccessful,
	)
	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Report implements report.Reporter.
func (m *Metrics) Report(e report.Event) {
	m.EventsTotal.WithLabelValues(string(e.Kind), string(e.Stage)).Inc()
}

// ObserveRun records the outcome of a run.
func (m *Metrics) ObserveRun(started time.Time, finished time.Time, err error) {
	m.RunDuration.Set(finished.Sub(started).Seconds())
	m.RunsTotal.WithLabelValues(Status(err)).Inc()
	if err == nil {
		m.LastSuccessful.Set(float64(finished.Unix()))
	}
}

// Status labels a run outcome.
func Status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.IsNoAssignments(err):
		return "no_work"
	default:
		return "failure"
	}
}

// WriteTextfile writes the current values to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return errors.WrapIO("write", path, prometheus.WriteToTextfile(path, m.registry))
}

var _ report.Reporter = (*Metrics)(nil)
