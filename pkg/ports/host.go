package ports

import (
	"errors"
	"time"

	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
)

// ErrUnsupported is returned by a host that carries an optional-feature
// method but cannot honor this particular call.
var ErrUnsupported = errors.New("host feature unsupported")

// ErrInvalidSelector is returned by QueryFirst for syntactically invalid
// selectors. A valid selector that matches nothing is nil, nil: "not
// found" is a normal outcome, not an error.
var ErrInvalidSelector = errors.New("invalid selector syntax")

// Host is the minimal document environment contract.
type Host interface {
	// Document returns the outermost document element.
	Document() Element

	// CreateElement builds a detached element of the given tag.
	CreateElement(tag string) Element

	// QueryFirst resolves a selector to the first matching element inside
	// scope. A nil scope means the whole document.
	QueryFirst(selector string, scope Element) (Element, error)

	// RequestFrame schedules fn for the next redraw.
	RequestFrame(fn func())

	// NewTimer schedules fn after d. The returned timer can be stopped.
	NewTimer(d time.Duration, fn func()) Timer
}

// Timer is a cancelable delayed execution.
type Timer interface {
	// Stop cancels the timer; it reports whether the call prevented the
	// function from running.
	Stop() bool
}

// Element is one node of the host document tree.
type Element interface {
	TagName() string
	ID() string

	// Contains reports whether other is e itself or a descendant of e.
	Contains(other Element) bool

	// IsConnected reports whether the element is attached to the document.
	IsConnected() bool

	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	AddClass(name string)
	RemoveClass(name string)

	AppendChild(child Element)
	Remove()

	// BoundingTop is the element's top edge in pixels relative to the
	// viewport top. Negative means scrolled past.
	BoundingTop() float64

	// AddEventListener registers fn for the named event and returns a
	// removal function.
	AddEventListener(event string, fn func()) (remove func())

	// Animate starts a paused-capable timeline animation. Hosts without
	// timeline animation return ErrUnsupported.
	Animate(frames []domain.Keyframe, timing domain.Timing) (PlaybackHandle, error)
}

// PlaybackHandle commands one running (or paused) animation track.
type PlaybackHandle interface {
	Play() error
	Pause() error
	Cancel() error

	// SetPlaybackRate sets the direction/speed. Hosts without reverse
	// playback return ErrUnsupported for negative rates.
	SetPlaybackRate(rate float64) error
	PlaybackRate() float64

	SetCurrentTime(t time.Duration) error
	CurrentTime() time.Duration

	// Duration is the configured track duration.
	Duration() time.Duration
}
