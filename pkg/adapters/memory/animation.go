package memory

import (
	"time"

	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// Handle is a recording playback handle. It never advances on its own:
// the animator core only commands and observes tracks, so a recorded
// command log plus a settable current time is a faithful double.
type Handle struct {
	host   *Host
	el     *Element
	frames []domain.Keyframe
	timing domain.Timing

	rate     float64
	current  time.Duration
	playing  bool
	canceled bool

	// Recorded command counts, for assertions.
	PlayCalls   int
	PauseCalls  int
	CancelCalls int
	RateHistory []float64
}

var _ ports.PlaybackHandle = (*Handle)(nil)
var _ ports.Compositable = (*Handle)(nil)

func (h *Handle) Play() error {
	h.PlayCalls++
	h.playing = true
	return nil
}

func (h *Handle) Pause() error {
	h.PauseCalls++
	h.playing = false
	return nil
}

func (h *Handle) Cancel() error {
	h.CancelCalls++
	h.playing = false
	h.canceled = true
	return nil
}

func (h *Handle) SetPlaybackRate(rate float64) error {
	if rate < 0 && !h.host.reversePlayback {
		return ports.ErrUnsupported
	}
	h.rate = rate
	h.RateHistory = append(h.RateHistory, rate)
	return nil
}

func (h *Handle) PlaybackRate() float64 { return h.rate }

func (h *Handle) SetCurrentTime(t time.Duration) error {
	h.current = t
	return nil
}

func (h *Handle) CurrentTime() time.Duration { return h.current }

func (h *Handle) Duration() time.Duration { return h.timing.Duration }

// Composited reports the host compositing toggle.
func (h *Handle) Composited() bool { return h.host.compositing }

// Playing reports whether the last command left the track running.
func (h *Handle) Playing() bool { return h.playing }

// Canceled reports whether the track was canceled.
func (h *Handle) Canceled() bool { return h.canceled }

// Element returns the animated element.
func (h *Handle) Element() *Element { return h.el }
