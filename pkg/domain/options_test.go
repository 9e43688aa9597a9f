package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOptions() Options {
	return Options{
		Tracks: TrackSpec{
			TrackTarget: {
				{Properties: map[string]string{"opacity": "0"}},
				{Properties: map[string]string{"opacity": "1"}},
			},
		},
		Timing:  Timing{Duration: 200 * time.Millisecond},
		Trigger: TriggerConfig{Kind: TriggerHover},
	}
}

func TestOptionsValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validOptions().Validate())
	})

	t.Run("missing target track", func(t *testing.T) {
		opts := validOptions()
		opts.Tracks = TrackSpec{"icon": opts.Tracks[TrackTarget]}
		var cfgErr *ConfigurationError
		assert.ErrorAs(t, opts.Validate(), &cfgErr)
	})

	t.Run("no tracks", func(t *testing.T) {
		opts := validOptions()
		opts.Tracks = nil
		assert.Error(t, opts.Validate())
	})

	t.Run("too many child selectors", func(t *testing.T) {
		opts := validOptions()
		opts.ChildSelectors = make(map[string]string)
		for i := 0; i < MaxChildSelectors+1; i++ {
			opts.ChildSelectors[fmt.Sprintf("child%d", i)] = fmt.Sprintf(".child-%d", i)
		}
		var cfgErr *ConfigurationError
		assert.ErrorAs(t, opts.Validate(), &cfgErr)
	})

	t.Run("exactly at the cap is fine", func(t *testing.T) {
		opts := validOptions()
		opts.ChildSelectors = make(map[string]string)
		for i := 0; i < MaxChildSelectors; i++ {
			opts.ChildSelectors[fmt.Sprintf("child%d", i)] = fmt.Sprintf(".child-%d", i)
		}
		assert.NoError(t, opts.Validate())
	})

	t.Run("revert on hover rejected for hover trigger", func(t *testing.T) {
		opts := validOptions()
		opts.RevertOnHover = true
		var cfgErr *ConfigurationError
		assert.ErrorAs(t, opts.Validate(), &cfgErr)
	})

	t.Run("revert on hover allowed for viewport trigger", func(t *testing.T) {
		opts := validOptions()
		opts.RevertOnHover = true
		opts.Trigger = TriggerConfig{Kind: TriggerViewportExit, Sentinel: SentinelConfig{TopOffset: 50}}
		assert.NoError(t, opts.Validate())
	})

	t.Run("track without matching child selector", func(t *testing.T) {
		opts := validOptions()
		opts.Tracks["icon"] = opts.Tracks[TrackTarget]
		assert.Error(t, opts.Validate())
	})

	t.Run("unknown trigger kind", func(t *testing.T) {
		opts := validOptions()
		opts.Trigger.Kind = "shake"
		assert.Error(t, opts.Validate())
	})
}

func TestTriggerFromMap(t *testing.T) {
	cfg, err := TriggerFromMap(map[string]any{
		"kind":        "viewport-exit",
		"debounce_ms": 250,
		"sentinel":    map[string]any{"top_offset": 120.0, "class_name": "sentinel"},
	})
	require.NoError(t, err)
	assert.Equal(t, TriggerViewportExit, cfg.Kind)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 120.0, cfg.Sentinel.TopOffset)
	assert.Equal(t, "sentinel", cfg.Sentinel.ClassName)

	_, err = TriggerFromMap(map[string]any{"kind": "wobble"})
	assert.Error(t, err)
}

func TestTriggerDebounceDefault(t *testing.T) {
	cfg := TriggerConfig{Kind: TriggerHover}
	assert.Equal(t, DefaultHoverDebounce, cfg.Debounce())
}

func TestTimingDefaults(t *testing.T) {
	timing := Timing{Duration: time.Second}.WithDefaults()
	assert.Equal(t, FillBoth, timing.Fill)

	explicit := Timing{Duration: time.Second, Fill: FillNone}.WithDefaults()
	assert.Equal(t, FillNone, explicit.Fill)
}
