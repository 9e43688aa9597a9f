// Package observability exposes Prometheus collectors for the animator
// instance registry. Metrics are for inspection, never for control.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
)

// Metrics aggregates instance lifecycle counters. All methods are safe
// on a nil receiver so callers can run without metrics wired.
type Metrics struct {
	attaches    *prometheus.CounterVec
	detaches    prometheus.Counter
	active      prometheus.Gauge
	errors      prometheus.Counter
	transitions prometheus.Counter
}

// New registers the collectors against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attaches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aegis_animator_attaches_total",
				Help: "Controllers attached, by capability level.",
			},
			[]string{"level"},
		),
		detaches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aegis_animator_detaches_total",
			Help: "Controllers destroyed through the registry.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aegis_animator_active_instances",
			Help: "Currently live controllers.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aegis_animator_instance_errors_total",
			Help: "Internal errors accumulated by detached controllers.",
		}),
		transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aegis_animator_transitions_total",
			Help: "Trigger transitions that produced playback, accumulated on detach.",
		}),
	}
	reg.MustRegister(m.attaches, m.detaches, m.active, m.errors, m.transitions)
	return m
}

// InstanceAttached records a successful attach at the given level.
func (m *Metrics) InstanceAttached(level domain.Level) {
	if m == nil {
		return
	}
	m.attaches.WithLabelValues(string(level)).Inc()
	m.active.Inc()
}

// InstanceDetached folds a destroyed controller's final snapshot into
// the aggregate counters.
func (m *Metrics) InstanceDetached(snap domain.MetricsSnapshot) {
	if m == nil {
		return
	}
	m.detaches.Inc()
	m.active.Dec()
	m.errors.Add(float64(snap.Errors))
	m.transitions.Add(float64(snap.Transitions))
}
