package aegis

import (
	"log/slog"

	"github.com/DavidOsipov/Aegis-Animator/internal/controller"
	"github.com/DavidOsipov/Aegis-Animator/internal/logging"
	"github.com/DavidOsipov/Aegis-Animator/pkg/capability"
	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// Version is the library release, surfaced by the CLI.
const Version = "0.3.0"

// Animator is the high-level entry point for the library. It owns the
// capability cache shared by every controller it attaches and wraps the
// internal controller with a simplified API for consumers.
type Animator struct {
	host   ports.Host
	cache  *capability.Cache
	logger *slog.Logger
}

// Option defines a functional option for configuring the Animator.
type Option func(*Animator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Animator) {
		a.logger = logger
	}
}

// WithCapabilityCache injects a pre-built capability cache. Useful when
// several animators must share one detection run, or in tests that need
// a fresh cache per case.
func WithCapabilityCache(cache *capability.Cache) Option {
	return func(a *Animator) {
		a.cache = cache
	}
}

// New initializes an Animator over the given host environment.
func New(host ports.Host, opts ...Option) (*Animator, error) {
	if host == nil {
		return nil, &domain.ConfigurationError{Reason: "a host environment is required"}
	}
	a := &Animator{host: host}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache == nil {
		a.cache = capability.NewCache()
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}
	return a, nil
}

// Capabilities returns the (memoized) detection result for the host.
func (a *Animator) Capabilities() domain.Capabilities {
	return a.cache.Detect(a.host)
}

// Attach constructs a controller for one target element. A returned
// error is a ConfigurationError or InitializationError; degraded
// environments succeed with the controller in a terminal fallback state
// and the target marked accordingly.
func (a *Animator) Attach(target ports.Element, cfg domain.Options) (*Controller, error) {
	inner, err := controller.New(a.host, a.cache, target, cfg, a.logger)
	if err != nil {
		return nil, err
	}
	return &Controller{inner: inner}, nil
}

// Controller is one live animation instance.
type Controller struct {
	inner *controller.Controller
}

// Destroy tears the instance down. Idempotent, never fails.
func (c *Controller) Destroy() {
	c.inner.Destroy()
}

// Metrics returns a read-only observability snapshot.
func (c *Controller) Metrics() domain.MetricsSnapshot {
	return c.inner.Metrics()
}

// Destroyed reports whether Destroy has run (or the controller destroyed
// itself after repeated internal errors).
func (c *Controller) Destroyed() bool { return c.inner.Destroyed() }

// Triggered reports the logical trigger flag.
func (c *Controller) Triggered() bool { return c.inner.Triggered() }

// Hovering reports the hover-override flag.
func (c *Controller) Hovering() bool { return c.inner.Hovering() }
