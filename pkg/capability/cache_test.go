package capability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidOsipov/Aegis-Animator/pkg/adapters/memory"
	"github.com/DavidOsipov/Aegis-Animator/pkg/capability"
	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

func TestDetectFullHost(t *testing.T) {
	caps := capability.NewCache().Detect(memory.NewHost())

	assert.True(t, caps.TimelineAnimation)
	assert.True(t, caps.ViewportObserver)
	assert.True(t, caps.ViewTransitions)
	assert.True(t, caps.CompositingSupported)
	assert.True(t, caps.ReversePlaybackSupported)
	assert.False(t, caps.ReducedMotionPreferred)
	assert.Equal(t, domain.LevelPremium, caps.Level)
}

func TestDetectDegradedHosts(t *testing.T) {
	tests := []struct {
		name string
		opts []memory.Option
		want domain.Level
	}{
		{"no view transitions", []memory.Option{memory.WithoutViewTransitions()}, domain.LevelEnhanced},
		{"no view transitions or compositing", []memory.Option{memory.WithoutViewTransitions(), memory.WithoutCompositing()}, domain.LevelStandard},
		{"no timeline animation", []memory.Option{memory.WithoutTimelineAnimation()}, domain.LevelFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := capability.NewCache().Detect(memory.NewHost(tt.opts...))
			assert.Equal(t, tt.want, caps.Level)
		})
	}
}

func TestDetectWithoutTimelineAnimationDisablesDependentProbes(t *testing.T) {
	caps := capability.NewCache().Detect(memory.NewHost(memory.WithoutTimelineAnimation()))
	assert.False(t, caps.TimelineAnimation)
	assert.False(t, caps.CompositingSupported)
	assert.False(t, caps.ReversePlaybackSupported)
}

func TestDetectReducedMotion(t *testing.T) {
	caps := capability.NewCache().Detect(memory.NewHost(memory.WithReducedMotion()))
	assert.True(t, caps.ReducedMotionPreferred)
}

func TestDetectMemoizes(t *testing.T) {
	cache := capability.NewCache()
	first := cache.Detect(memory.NewHost())
	// A degraded host passed later must not change the memoized result.
	second := cache.Detect(memory.NewHost(memory.WithoutTimelineAnimation()))
	assert.Equal(t, first, second)

	cache.Reset()
	third := cache.Detect(memory.NewHost(memory.WithoutTimelineAnimation()))
	assert.Equal(t, domain.LevelFallback, third.Level)
}

func TestProbesRemoveThrowawayElements(t *testing.T) {
	host := memory.NewHost()
	capability.NewCache().Detect(host)
	leftover, err := host.QueryFirst("*", nil)
	require.NoError(t, err)
	assert.Nil(t, leftover, "probes must not leave elements behind")

	degraded := memory.NewHost(memory.WithoutTimelineAnimation(), memory.WithoutViewTransitions())
	capability.NewCache().Detect(degraded)
	leftover, err = degraded.QueryFirst("*", nil)
	require.NoError(t, err)
	assert.Nil(t, leftover)
}

// throwingHost panics inside Animate, like a host whose animation API
// exists but explodes when exercised.
type throwingHost struct {
	*memory.Host
	removed int
}

type throwingElement struct {
	ports.Element
	host *throwingHost
}

func (e throwingElement) Animate([]domain.Keyframe, domain.Timing) (ports.PlaybackHandle, error) {
	panic("host animation API exploded")
}

func (e throwingElement) Remove() {
	e.host.removed++
	e.Element.Remove()
}

func (h *throwingHost) CreateElement(tag string) ports.Element {
	return throwingElement{Element: h.Host.CreateElement(tag), host: h}
}

func TestProbeSurvivesThrowingHost(t *testing.T) {
	host := &throwingHost{Host: memory.NewHost()}

	require.NotPanics(t, func() {
		assert.False(t, capability.ProbeTimelineAnimation(host))
		assert.False(t, capability.ProbeCompositing(host))
		assert.False(t, capability.ProbeReversePlayback(host))
	})
	// Every throwaway element was removed despite the panics.
	assert.Equal(t, 3, host.removed)
}

func TestProbeViewportObserverRequiresWorkingObservation(t *testing.T) {
	assert.True(t, capability.ProbeViewportObserver(memory.NewHost()))
	assert.False(t, capability.ProbeViewportObserver(memory.NewHost(memory.WithoutViewportObserver())))
}

func TestDetectIsQuick(t *testing.T) {
	start := time.Now()
	capability.NewCache().Detect(memory.NewHost())
	assert.Less(t, time.Since(start), time.Second)
}
