// Package debounce provides a restartable deferred action. Scheduling
// again restarts the delay; Cancel drops the pending run. The action
// itself is expected to re-check current state when it fires, because
// state may have changed between scheduling and firing.
package debounce

import (
	"sync"
	"time"

	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// TimerFactory is the subset of the host used to arm timers.
type TimerFactory interface {
	NewTimer(d time.Duration, fn func()) ports.Timer
}

// Debouncer defers one action by a fixed delay.
type Debouncer struct {
	host  TimerFactory
	delay time.Duration

	mu      sync.Mutex
	pending ports.Timer
}

// New builds a debouncer over the host's timer primitive.
func New(host TimerFactory, delay time.Duration) *Debouncer {
	return &Debouncer{host: host, delay: delay}
}

// Schedule arms (or re-arms) the deferred action.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.host.NewTimer(d.delay, func() {
		d.mu.Lock()
		d.pending = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending action.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
