package capability

import (
	"time"

	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// probeFrames is the minimal keyframe pair used by element-based probes.
var probeFrames = []domain.Keyframe{
	{Properties: map[string]string{"opacity": "0"}},
	{Properties: map[string]string{"opacity": "1"}},
}

var probeTiming = domain.Timing{Duration: 10 * time.Millisecond, Fill: domain.FillNone}

// withThrowaway runs fn against a temporary off-screen element. The
// element is removed on every path, including a panicking host, and a
// panic is absorbed into a false result: a host that panics on a probe
// does not support the feature.
func withThrowaway(host ports.Host, fn func(el ports.Element) bool) (ok bool) {
	el := host.CreateElement("div")
	el.SetAttribute("style", "position:absolute;left:-9999px;width:1px;height:1px")
	host.Document().AppendChild(el)
	defer func() {
		el.Remove()
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return fn(el)
}

// ProbeTimelineAnimation reports whether the host can run timeline
// animations at all.
func ProbeTimelineAnimation(host ports.Host) bool {
	return withThrowaway(host, func(el ports.Element) bool {
		handle, err := el.Animate(probeFrames, probeTiming)
		if err != nil {
			return false
		}
		_ = handle.Cancel()
		return true
	})
}

// ProbeViewportObserver reports whether the host can observe viewport
// intersection. Presence of the interface is not enough; a trial
// observation must succeed.
func ProbeViewportObserver(host ports.Host) bool {
	vo, ok := host.(ports.ViewportObserving)
	if !ok {
		return false
	}
	return withThrowaway(host, func(el ports.Element) bool {
		obs, err := vo.ObserveViewport(el, func(bool) {})
		if err != nil {
			return false
		}
		obs.Disconnect()
		return true
	})
}

// ProbeViewTransitions reports whether declarative view transitions are
// available. Presence of the interface is not enough; the host may
// still refuse the call.
func ProbeViewTransitions(host ports.Host) bool {
	vt, ok := host.(ports.ViewTransitioning)
	if !ok {
		return false
	}
	return withThrowaway(host, func(el ports.Element) bool {
		return vt.SetTransitionName(el, "aegis-probe") == nil
	})
}

// ProbeReducedMotion reports the user's reduced-motion preference. A
// host without media preferences is treated as not preferring it.
func ProbeReducedMotion(host ports.Host) bool {
	mp, ok := host.(ports.MediaPreferences)
	if !ok {
		return false
	}
	return mp.PrefersReducedMotion()
}

// ProbeCompositing reports whether animations run on the compositor.
func ProbeCompositing(host ports.Host) bool {
	return withThrowaway(host, func(el ports.Element) bool {
		handle, err := el.Animate(probeFrames, probeTiming)
		if err != nil {
			return false
		}
		defer func() { _ = handle.Cancel() }()
		c, ok := handle.(ports.Compositable)
		return ok && c.Composited()
	})
}

// ProbeReversePlayback reports whether a track can play backwards from
// an arbitrary point (negative playback rate).
func ProbeReversePlayback(host ports.Host) bool {
	return withThrowaway(host, func(el ports.Element) bool {
		handle, err := el.Animate(probeFrames, probeTiming)
		if err != nil {
			return false
		}
		defer func() { _ = handle.Cancel() }()
		return handle.SetPlaybackRate(-1) == nil
	})
}
