// Package capability detects what the host environment supports and
// memoizes the result. Probes are stateless functions; the Cache is an
// explicit, injectable object owned by whichever component assembles
// controllers, so tests instantiate a fresh cache instead of resetting a
// singleton.
package capability

import (
	"sync"

	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// Cache memoizes one capability detection run.
type Cache struct {
	mu       sync.Mutex
	computed bool
	caps     domain.Capabilities
}

// NewCache returns an empty cache; the first Detect fills it.
func NewCache() *Cache {
	return &Cache{}
}

// Detect runs all probes on the first call and returns the memoized
// result afterwards, regardless of the host passed to later calls.
func (c *Cache) Detect(host ports.Host) domain.Capabilities {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.computed {
		return c.caps
	}

	caps := domain.Capabilities{
		TimelineAnimation:        ProbeTimelineAnimation(host),
		ViewportObserver:         ProbeViewportObserver(host),
		ViewTransitions:          ProbeViewTransitions(host),
		ReducedMotionPreferred:   ProbeReducedMotion(host),
		CompositingSupported:     ProbeCompositing(host),
		ReversePlaybackSupported: ProbeReversePlayback(host),
	}
	caps.Level = domain.LevelFor(caps)

	c.caps = caps
	c.computed = true
	return c.caps
}

// Reset clears the memo so the next Detect re-probes. Intended for tests.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.computed = false
	c.caps = domain.Capabilities{}
}
