package memory

import (
	"sort"
	"time"

	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// Host is the in-memory document environment.
type Host struct {
	doc *Element

	// feature toggles (all on by default, except reduced motion)
	timelineAnimation bool
	reversePlayback   bool
	compositing       bool
	viewTransitions   bool
	viewportObserver  bool
	reducedMotion     bool

	viewportHeight float64
	scrollY        float64

	frames []func()

	timers   []*fakeTimer
	now      time.Duration
	timerSeq int

	observations []*observation
	animations   []*Handle
}

var (
	_ ports.Host              = (*Host)(nil)
	_ ports.ViewportObserving = (*Host)(nil)
	_ ports.ViewTransitioning = (*Host)(nil)
	_ ports.MediaPreferences  = (*Host)(nil)
)

// Option configures the host.
type Option func(*Host)

// WithoutTimelineAnimation makes Animate fail with ErrUnsupported.
func WithoutTimelineAnimation() Option {
	return func(h *Host) { h.timelineAnimation = false }
}

// WithoutReversePlayback makes negative playback rates fail.
func WithoutReversePlayback() Option {
	return func(h *Host) { h.reversePlayback = false }
}

// WithoutCompositing reports tracks as not composited.
func WithoutCompositing() Option {
	return func(h *Host) { h.compositing = false }
}

// WithoutViewTransitions makes SetTransitionName fail.
func WithoutViewTransitions() Option {
	return func(h *Host) { h.viewTransitions = false }
}

// WithoutViewportObserver makes ObserveViewport fail.
func WithoutViewportObserver() Option {
	return func(h *Host) { h.viewportObserver = false }
}

// WithReducedMotion reports the reduced-motion preference as set.
func WithReducedMotion() Option {
	return func(h *Host) { h.reducedMotion = true }
}

// WithViewportHeight overrides the default 800px viewport.
func WithViewportHeight(px float64) Option {
	return func(h *Host) { h.viewportHeight = px }
}

// NewHost builds a fully-featured host with an empty document.
func NewHost(opts ...Option) *Host {
	h := &Host{
		timelineAnimation: true,
		reversePlayback:   true,
		compositing:       true,
		viewTransitions:   true,
		viewportObserver:  true,
		viewportHeight:    800,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.doc = newElement(h, "#document")
	return h
}

func (h *Host) Document() ports.Element { return h.doc }

// Root returns the document as a concrete element, for tree building.
func (h *Host) Root() *Element { return h.doc }

func (h *Host) CreateElement(tag string) ports.Element {
	return newElement(h, tag)
}

// NewElement creates, configures and returns a concrete detached
// element. Scenario/test helper.
func (h *Host) NewElement(tag, id string, classes ...string) *Element {
	el := newElement(h, tag)
	el.id = id
	for _, c := range classes {
		el.AddClass(c)
	}
	return el
}

func (h *Host) QueryFirst(selector string, scope ports.Element) (ports.Element, error) {
	chain, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}
	scopeEl := h.doc
	if scope != nil {
		el, ok := scope.(*Element)
		if !ok {
			return nil, nil
		}
		scopeEl = el
	}
	match := queryFirst(scopeEl, chain)
	if match == nil {
		// not found is a normal outcome, not an error
		return nil, nil
	}
	return match, nil
}

func (h *Host) RequestFrame(fn func()) {
	h.frames = append(h.frames, fn)
}

// StepFrame runs every callback queued at the time of the call.
// Callbacks queued while stepping run on the next StepFrame.
func (h *Host) StepFrame() {
	queued := h.frames
	h.frames = nil
	for _, fn := range queued {
		fn()
	}
}

// PendingFrames reports how many frame callbacks are queued.
func (h *Host) PendingFrames() int { return len(h.frames) }

type fakeTimer struct {
	deadline time.Duration
	seq      int
	fn       func()
	stopped  bool
	fired    bool
}

func (t *fakeTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (h *Host) NewTimer(d time.Duration, fn func()) ports.Timer {
	t := &fakeTimer{deadline: h.now + d, seq: h.timerSeq, fn: fn}
	h.timerSeq++
	h.timers = append(h.timers, t)
	return t
}

// Advance moves the manual clock forward and fires due timers in
// deadline order.
func (h *Host) Advance(d time.Duration) {
	h.now += d
	due := make([]*fakeTimer, 0)
	remaining := h.timers[:0]
	for _, t := range h.timers {
		if !t.stopped && !t.fired && t.deadline <= h.now {
			due = append(due, t)
		} else if !t.stopped && !t.fired {
			remaining = append(remaining, t)
		}
	}
	h.timers = remaining
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.fired = true
		t.fn()
	}
}

type observation struct {
	host     *Host
	marker   *Element
	onChange func(bool)
	last     bool
	active   bool
}

func (o *observation) Disconnect() {
	o.active = false
}

func (h *Host) ObserveViewport(marker ports.Element, onChange func(bool)) (ports.ViewportObservation, error) {
	if !h.viewportObserver {
		return nil, ports.ErrUnsupported
	}
	el, ok := marker.(*Element)
	if !ok {
		return nil, ports.ErrUnsupported
	}
	obs := &observation{
		host:     h,
		marker:   el,
		onChange: onChange,
		last:     h.intersecting(el),
		active:   true,
	}
	h.observations = append(h.observations, obs)
	return obs, nil
}

func (h *Host) intersecting(el *Element) bool {
	top := el.top - h.scrollY
	return top >= 0 && top <= h.viewportHeight
}

// SetScrollY scrolls the document and notifies every active observation
// whose intersection state changed.
func (h *Host) SetScrollY(y float64) {
	h.scrollY = y
	for _, obs := range h.observations {
		if !obs.active {
			continue
		}
		now := h.intersecting(obs.marker)
		if now != obs.last {
			obs.last = now
			obs.onChange(now)
		}
	}
}

// ScrollY returns the current scroll offset.
func (h *Host) ScrollY() float64 { return h.scrollY }

func (h *Host) SetTransitionName(el ports.Element, name string) error {
	if !h.viewTransitions {
		return ports.ErrUnsupported
	}
	el.SetAttribute("view-transition-name", name)
	return nil
}

func (h *Host) PrefersReducedMotion() bool { return h.reducedMotion }

// Animations returns every handle created by any element of this host.
func (h *Host) Animations() []*Handle { return h.animations }

// ActiveObservations counts connected viewport observations. Teardown
// assertion helper.
func (h *Host) ActiveObservations() int {
	n := 0
	for _, obs := range h.observations {
		if obs.active {
			n++
		}
	}
	return n
}
