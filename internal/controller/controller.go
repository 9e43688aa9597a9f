// Package controller implements the per-instance animation controller:
// the trigger state machine that turns a declarative configuration into
// timeline playback over sandboxed elements, with capability-driven
// fallbacks and deterministic teardown.
//
// The controller is single-threaded by contract: every entry point runs
// on a host callback boundary (event listener, frame, timer) and the
// host delivers those cooperatively.
package controller

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/DavidOsipov/Aegis-Animator/internal/cancelscope"
	"github.com/DavidOsipov/Aegis-Animator/internal/debounce"
	"github.com/DavidOsipov/Aegis-Animator/internal/sandbox"
	"github.com/DavidOsipov/Aegis-Animator/pkg/capability"
	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// maxErrorBudget is the number of internal failures a controller absorbs
// before destroying itself. A host that throws on every interaction must
// not keep a broken controller alive.
const maxErrorBudget = 3

// mode is the coarse lifecycle state after construction.
type mode int

const (
	modeReady mode = iota
	modeReducedMotion
	modeUnsupported
	modeError
)

// forbiddenTargets are element kinds that can never carry an animator.
var forbiddenTargets = map[string]struct{}{
	"html":   {},
	"body":   {},
	"head":   {},
	"script": {},
	"iframe": {},
	"object": {},
	"embed":  {},
}

// Controller owns one target element, one sandbox, one set of tracks and
// the trigger state machine.
type Controller struct {
	host   ports.Host
	target ports.Element
	opts   domain.Options
	caps   domain.Capabilities
	logger *slog.Logger

	mode     mode
	box      *sandbox.Sandbox
	scope    *cancelscope.Scope
	children map[string]ports.Element
	tracks   map[string]ports.PlaybackHandle

	sentinel    ports.Element
	observation ports.ViewportObservation
	leave       *debounce.Debouncer

	triggered bool
	hovering  bool
	destroyed bool

	errorCount   uint64
	transitions  uint64
	initDuration time.Duration
}

// New runs the full construction sequence. A ConfigurationError means
// the options can never work; an InitializationError means the target
// element itself is unusable (the element is marked with the "error"
// fallback attribute when possible). Degraded environments do not fail:
// the controller comes back alive in a terminal reduced-motion or
// unsupported sub-state, with the target marked accordingly.
func New(host ports.Host, cache *capability.Cache, target ports.Element, opts domain.Options, logger *slog.Logger) (*Controller, error) {
	start := time.Now()

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		host:     host,
		target:   target,
		opts:     opts,
		logger:   logger,
		scope:    cancelscope.New(),
		children: make(map[string]ports.Element),
		tracks:   make(map[string]ports.PlaybackHandle),
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	if err := c.validateTarget(); err != nil {
		c.markError()
		return nil, err
	}
	c.logger = c.logger.With("target", describeElement(target))

	box, err := sandbox.New(host, target)
	if err != nil {
		c.markError()
		return nil, &domain.InitializationError{Reason: "failed to build element sandbox", Cause: err}
	}
	c.box = box

	c.caps = cache.Detect(host)

	if c.caps.ReducedMotionPreferred {
		c.mode = modeReducedMotion
		target.RemoveAttribute(domain.AttrReady)
		target.SetAttribute(domain.AttrDisabled, domain.DisabledReducedMotion)
		c.initDuration = time.Since(start)
		return c, nil
	}

	if !c.supportsTrigger() {
		c.mode = modeUnsupported
		target.RemoveAttribute(domain.AttrReady)
		target.SetAttribute(domain.AttrDisabled, domain.DisabledAPIUnavailable)
		c.initDuration = time.Since(start)
		return c, nil
	}

	c.mode = modeReady
	c.initReady()
	c.initDuration = time.Since(start)
	return c, nil
}

func (c *Controller) validateTarget() error {
	if c.target == nil {
		return &domain.InitializationError{Reason: "target element is nil"}
	}
	if !c.target.IsConnected() {
		return &domain.InitializationError{Reason: "target element is not connected to the document"}
	}
	if _, bad := forbiddenTargets[c.target.TagName()]; bad {
		return &domain.InitializationError{Reason: fmt.Sprintf("element %q cannot be animated", c.target.TagName())}
	}
	if c.opts.ID != "" && c.target.ID() != c.opts.ID {
		return &domain.InitializationError{Reason: fmt.Sprintf("target id %q does not match configured id %q", c.target.ID(), c.opts.ID)}
	}
	return nil
}

func (c *Controller) markError() {
	if c.target == nil {
		return
	}
	c.target.RemoveAttribute(domain.AttrReady)
	c.target.SetAttribute(domain.AttrDisabled, domain.DisabledError)
}

// supportsTrigger checks the capability prerequisites of the requested
// trigger kind.
func (c *Controller) supportsTrigger() bool {
	if !c.caps.TimelineAnimation {
		return false
	}
	if c.opts.Trigger.Kind == domain.TriggerViewportExit && !c.caps.ViewportObserver {
		return false
	}
	return true
}

// initReady resolves children, creates paused tracks and wires the
// trigger. Individual failures degrade the affected track, never the
// whole controller.
func (c *Controller) initReady() {
	c.resolveChildren()
	if c.destroyed {
		// The error budget can already trip during resolution.
		return
	}
	c.applyTransitionName()
	c.createTracks()
	if c.destroyed {
		return
	}

	switch c.opts.Trigger.Kind {
	case domain.TriggerHover:
		c.wireHover()
	case domain.TriggerClick:
		c.wireClick()
	case domain.TriggerViewportExit:
		c.wireViewportExit()
	}

	if c.opts.RevertOnHover {
		c.wireRevertOnHover()
	}

	c.target.RemoveAttribute(domain.AttrDisabled)
	c.target.SetAttribute(domain.AttrReady, "true")
}

func (c *Controller) resolveChildren() {
	for name, selector := range c.opts.ChildSelectors {
		// Resolution runs against the whole document; the sandbox is what
		// rejects anything outside the target subtree.
		el, err := c.box.Resolve(selector, nil)
		if err != nil {
			// A sandbox rejection degrades this one child, not the
			// controller.
			c.recordError("resolve-child", err)
			continue
		}
		if el == nil {
			c.logger.Debug("child selector matched nothing", "name", name, "selector", selector)
			continue
		}
		c.children[name] = el
	}
}

func (c *Controller) applyTransitionName() {
	if c.opts.TransitionName == "" || c.caps.Level != domain.LevelPremium {
		return
	}
	vt, ok := c.host.(ports.ViewTransitioning)
	if !ok {
		return
	}
	if err := vt.SetTransitionName(c.target, c.opts.TransitionName); err != nil {
		c.logger.Warn("failed to apply transition name", "name", c.opts.TransitionName, "err", err)
	}
}

func (c *Controller) createTracks() {
	timing := c.opts.Timing.WithDefaults()
	for name, frames := range c.opts.Tracks {
		el := c.target
		if name != domain.TrackTarget {
			child, ok := c.children[name]
			if !ok {
				// Unresolved child: the track is skipped, not failed.
				continue
			}
			el = child
		}
		handle, err := el.Animate(frames, timing)
		if err != nil {
			c.recordError("create-track", fmt.Errorf("track %q: %w", name, err))
			continue
		}
		if err := handle.Pause(); err != nil {
			c.recordError("pause-track", fmt.Errorf("track %q: %w", name, err))
		}
		c.tracks[name] = handle
	}
}

// --- trigger wiring ---

func (c *Controller) wireHover() {
	var leave *debounce.Debouncer
	if c.opts.Trigger.DebounceMs > 0 {
		leave = debounce.New(c.host, c.opts.Trigger.Debounce())
		c.leave = leave
	}
	removeEnter := c.target.AddEventListener("mouseenter", c.guard("hover-enter", func() {
		if leave != nil {
			leave.Cancel()
		}
		c.onTriggerChange(true)
	}))
	removeLeave := c.target.AddEventListener("mouseleave", c.guard("hover-leave", func() {
		if leave == nil {
			c.onTriggerChange(false)
			return
		}
		leave.Schedule(func() {
			if c.destroyed || !c.triggered {
				return
			}
			c.onTriggerChange(false)
		})
	}))
	c.scope.OnCancel(removeEnter)
	c.scope.OnCancel(removeLeave)
}

func (c *Controller) wireClick() {
	remove := c.target.AddEventListener("click", c.guard("click", func() {
		c.onTriggerChange(!c.triggered)
	}))
	c.scope.OnCancel(remove)
}

func (c *Controller) wireViewportExit() {
	vo, ok := c.host.(ports.ViewportObserving)
	if !ok {
		// supportsTrigger vetted this; a host lying about its shape is an
		// internal failure.
		c.recordError("viewport-observe", ports.ErrUnsupported)
		return
	}

	cfg := c.opts.Trigger.Sentinel
	marker := c.host.CreateElement("span")
	marker.SetAttribute("style", fmt.Sprintf("position:absolute;top:%gpx;left:0;width:1px;height:1px;visibility:hidden", cfg.TopOffset))
	marker.SetAttribute("aria-hidden", "true")
	if cfg.ClassName != "" {
		marker.AddClass(cfg.ClassName)
	}
	c.host.Document().AppendChild(marker)
	c.sentinel = marker

	obs, err := vo.ObserveViewport(marker, func(intersecting bool) {
		// Observer callbacks may arrive after teardown was requested;
		// defer one frame and re-check.
		c.host.RequestFrame(c.guard("viewport-change", func() {
			c.onTriggerChange(!intersecting)
		}))
	})
	if err != nil {
		c.recordError("viewport-observe", err)
		return
	}
	c.observation = obs

	// Initial state pass: geometrically check the marker once, deferred a
	// frame, and seek (not play) every track to match. No visible "pop"
	// animation on load.
	c.host.RequestFrame(c.guard("viewport-initial", func() {
		exited := marker.BoundingTop() < 0
		c.triggered = exited
		for name, handle := range c.tracks {
			c.seekTrack(name, handle, exited)
		}
	}))
}

func (c *Controller) wireRevertOnHover() {
	c.leave = debounce.New(c.host, c.opts.Trigger.Debounce())

	removeEnter := c.target.AddEventListener("mouseenter", c.guard("revert-enter", func() {
		c.hovering = true
		c.leave.Cancel()
		if c.triggered {
			// Force the un-triggered visual state without touching the
			// logical trigger.
			c.playAll(false)
		}
	}))
	removeLeave := c.target.AddEventListener("mouseleave", c.guard("revert-leave", func() {
		c.hovering = false
		c.leave.Schedule(func() {
			// State may have changed between scheduling and firing.
			if c.destroyed || c.hovering || !c.triggered {
				return
			}
			c.playAll(true)
		})
	}))
	c.scope.OnCancel(removeEnter)
	c.scope.OnCancel(removeLeave)
}

// guard wraps a host callback: it no-ops after destruction and converts
// a panicking host into a counted internal error.
func (c *Controller) guard(op string, fn func()) func() {
	return func() {
		if c.destroyed {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				c.recordError(op, fmt.Errorf("host callback panicked: %v", r))
			}
		}()
		fn()
	}
}

// --- state machine ---

// onTriggerChange applies one logical trigger transition and requests
// playback toward the new state, unless the hover override is active.
func (c *Controller) onTriggerChange(to bool) {
	if c.destroyed || c.mode != modeReady {
		return
	}
	c.triggered = to
	if c.hovering && c.opts.RevertOnHover {
		// The hover override always wins while active.
		return
	}
	c.playAll(to)
}

// playAll requests playback toward the given end state on every track.
func (c *Controller) playAll(toEndState bool) {
	c.transitions++
	for name, handle := range c.tracks {
		c.playTrack(name, handle, toEndState)
	}
}

// playTrack runs one track toward an extreme. With reverse-playback
// support and a positive duration it produces an interpolated animation;
// otherwise it falls back to an instant seek. A failed reverse attempt
// also falls back, so the track never ends up half-commanded.
func (c *Controller) playTrack(name string, handle ports.PlaybackHandle, toEndState bool) {
	if c.caps.ReversePlaybackSupported && handle.Duration() > 0 {
		err := c.reversePlay(handle, toEndState)
		if err == nil {
			return
		}
		c.logger.Warn("reverse playback failed, seeking instead", "track", name, "err", err)
	}
	c.seekTrack(name, handle, toEndState)
}

func (c *Controller) reversePlay(handle ports.PlaybackHandle, toEndState bool) error {
	rate := 1.0
	start := time.Duration(0)
	if !toEndState {
		rate = -1
		start = handle.Duration()
	}
	if err := handle.SetPlaybackRate(rate); err != nil {
		return err
	}
	if err := handle.SetCurrentTime(start); err != nil {
		return err
	}
	return handle.Play()
}

// seekTrack pins the track at an extreme and pauses it: an instant
// visual state, not an animated transition.
func (c *Controller) seekTrack(name string, handle ports.PlaybackHandle, toEndState bool) {
	target := time.Duration(0)
	if toEndState {
		target = handle.Duration()
	}
	if err := handle.SetCurrentTime(target); err != nil {
		c.recordError("seek-track", fmt.Errorf("track %q: %w", name, err))
		return
	}
	if err := handle.Pause(); err != nil {
		c.recordError("pause-track", fmt.Errorf("track %q: %w", name, err))
	}
}

// recordError counts an internal failure; past the budget the controller
// destroys itself rather than keep fighting a misbehaving host.
func (c *Controller) recordError(op string, err error) {
	c.errorCount++
	c.logger.Error("animator internal failure", "op", op, "err", err)
	if c.errorCount > maxErrorBudget && !c.destroyed {
		c.logger.Error("error budget exceeded, destroying controller", "errors", c.errorCount)
		c.Destroy()
	}
}

// --- public surface ---

// Destroy tears down everything the controller allocated. Idempotent;
// every step is attempted even if an earlier one fails, with failures
// logged and never returned.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	c.attempt("cancel-scope", c.scope.Cancel)
	if c.leave != nil {
		c.attempt("cancel-debounce", c.leave.Cancel)
	}
	if c.observation != nil {
		c.attempt("disconnect-observer", c.observation.Disconnect)
		c.observation = nil
	}
	for name, handle := range c.tracks {
		h := handle
		c.attempt("cancel-track", func() {
			if err := h.Cancel(); err != nil {
				c.logger.Warn("failed to cancel track", "track", name, "err", err)
			}
		})
	}
	c.tracks = make(map[string]ports.PlaybackHandle)
	c.children = make(map[string]ports.Element)
	if c.box != nil {
		c.attempt("clear-sandbox", c.box.Clear)
	}
	if c.sentinel != nil {
		c.attempt("remove-sentinel", c.sentinel.Remove)
		c.sentinel = nil
	}
	if c.target != nil {
		c.attempt("remove-ready-marker", func() {
			c.target.RemoveAttribute(domain.AttrReady)
		})
	}
}

// attempt runs one teardown step, absorbing panics so the remaining
// steps still run.
func (c *Controller) attempt(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("teardown step failed", "op", op, "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

// Metrics returns a read-only snapshot for observability.
func (c *Controller) Metrics() domain.MetricsSnapshot {
	return domain.MetricsSnapshot{
		InitDuration:     c.initDuration,
		Transitions:      c.transitions,
		Errors:           c.errorCount,
		LiveTracks:       len(c.tracks),
		ResolvedChildren: len(c.children),
		Level:            c.caps.Level,
	}
}

// Destroyed reports whether the controller reached its terminal state.
func (c *Controller) Destroyed() bool { return c.destroyed }

// Triggered reports the logical trigger flag.
func (c *Controller) Triggered() bool { return c.triggered }

// Hovering reports the hover-override flag.
func (c *Controller) Hovering() bool { return c.hovering }

// Capabilities returns the detection result the controller was built
// under.
func (c *Controller) Capabilities() domain.Capabilities { return c.caps }

func describeElement(el ports.Element) string {
	if id := el.ID(); id != "" {
		return el.TagName() + "#" + id
	}
	return el.TagName()
}
