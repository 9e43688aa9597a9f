// Package registry maps target elements to live controllers and owns
// their lifetimes at the application level. The animator core neither
// knows nor cares how many instances exist; the registry is the one
// place that does.
package registry

import (
	"log/slog"
	"sync"

	aegis "github.com/DavidOsipov/Aegis-Animator"
	"github.com/DavidOsipov/Aegis-Animator/internal/logging"
	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/observability"
	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// InstanceStatus is one registry entry as reported to observers.
type InstanceStatus struct {
	Target    string                 `json:"target"`
	Destroyed bool                   `json:"destroyed"`
	Metrics   domain.MetricsSnapshot `json:"metrics"`
}

// Registry manages controller instances keyed by their target element.
type Registry struct {
	animator *aegis.Animator
	metrics  *observability.Metrics
	logger   *slog.Logger

	mu        sync.RWMutex
	instances map[ports.Element]*aegis.Controller
}

// Option configures the Registry.
type Option func(*Registry)

// WithMetrics wires Prometheus instance counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithLogger configures a logger for registry events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry over the given animator.
func New(animator *aegis.Animator, opts ...Option) *Registry {
	r := &Registry{
		animator:  animator,
		logger:    logging.NewNop(),
		instances: make(map[ports.Element]*aegis.Controller),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach builds a controller for target. An existing controller for the
// same element is destroyed first: one element, one instance.
func (r *Registry) Attach(target ports.Element, cfg domain.Options) (*aegis.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.instances[target]; ok {
		r.logger.Debug("replacing existing controller", "target", describe(target))
		snap := prev.Metrics()
		prev.Destroy()
		r.metrics.InstanceDetached(snap)
		delete(r.instances, target)
	}

	ctrl, err := r.animator.Attach(target, cfg)
	if err != nil {
		return nil, err
	}
	r.instances[target] = ctrl
	r.metrics.InstanceAttached(ctrl.Metrics().Level)
	return ctrl, nil
}

// Get returns the live controller for target, if any.
func (r *Registry) Get(target ports.Element) (*aegis.Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctrl, ok := r.instances[target]
	return ctrl, ok
}

// Detach destroys and forgets the controller for target. It reports
// whether an instance existed.
func (r *Registry) Detach(target ports.Element) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctrl, ok := r.instances[target]
	if !ok {
		return false
	}
	snap := ctrl.Metrics()
	ctrl.Destroy()
	r.metrics.InstanceDetached(snap)
	delete(r.instances, target)
	return true
}

// DetachAll destroys every instance.
func (r *Registry) DetachAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for target, ctrl := range r.instances {
		snap := ctrl.Metrics()
		ctrl.Destroy()
		r.metrics.InstanceDetached(snap)
		delete(r.instances, target)
	}
}

// Len reports the number of registered instances.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instances)
}

// Statuses returns a point-in-time view of every instance.
func (r *Registry) Statuses() []InstanceStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]InstanceStatus, 0, len(r.instances))
	for target, ctrl := range r.instances {
		out = append(out, InstanceStatus{
			Target:    describe(target),
			Destroyed: ctrl.Destroyed(),
			Metrics:   ctrl.Metrics(),
		})
	}
	return out
}

func describe(el ports.Element) string {
	if id := el.ID(); id != "" {
		return el.TagName() + "#" + id
	}
	return el.TagName()
}
