// Package cancelscope provides a cancellation scope: a value that
// collects cleanup callbacks from every registration made against it and
// runs them all, once, when canceled. Teardown is deterministic, with no
// dependence on garbage collection timing.
package cancelscope

import "sync"

// Scope fans a single Cancel out to every registered cleanup.
type Scope struct {
	mu       sync.Mutex
	canceled bool
	cleanups []func()
}

// New returns a live scope.
func New() *Scope {
	return &Scope{}
}

// OnCancel registers fn to run when the scope is canceled. If the scope
// is already canceled, fn runs immediately; a late registration must
// not leak its resource.
func (s *Scope) OnCancel(fn func()) {
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Canceled reports whether Cancel has run.
func (s *Scope) Canceled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canceled
}

// Cancel runs every cleanup in reverse registration order. A second call
// is a no-op.
func (s *Scope) Cancel() {
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		return
	}
	s.canceled = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
