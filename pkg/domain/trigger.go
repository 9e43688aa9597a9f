package domain

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// TriggerKind discriminates the TriggerConfig union.
type TriggerKind string

const (
	TriggerHover        TriggerKind = "hover"
	TriggerClick        TriggerKind = "click"
	TriggerViewportExit TriggerKind = "viewport-exit"
)

// DefaultHoverDebounce is the leave-side debounce applied when a hover
// trigger (or revert-on-hover) does not specify its own delay.
const DefaultHoverDebounce = 100 * time.Millisecond

// SentinelConfig places the synthetic viewport marker for the
// viewport-exit trigger.
type SentinelConfig struct {
	// TopOffset is the vertical position of the marker, in pixels from
	// the top of the document.
	TopOffset float64 `yaml:"top_offset" mapstructure:"top_offset"`

	// ClassName is an optional class applied to the marker element.
	ClassName string `yaml:"class_name,omitempty" mapstructure:"class_name"`
}

// TriggerConfig is the tagged union selecting how a controller flips its
// logical "triggered" state. Exactly one variant applies per controller;
// the value is immutable after construction.
type TriggerConfig struct {
	Kind TriggerKind `yaml:"kind" mapstructure:"kind"`

	// DebounceMs applies to the hover-leave path (Hover trigger and
	// revert-on-hover). Zero means DefaultHoverDebounce.
	DebounceMs int `yaml:"debounce_ms,omitempty" mapstructure:"debounce_ms"`

	// Sentinel configures the marker for the viewport-exit variant.
	Sentinel SentinelConfig `yaml:"sentinel,omitempty" mapstructure:"sentinel"`
}

// Debounce returns the effective hover-leave debounce delay.
func (t TriggerConfig) Debounce() time.Duration {
	if t.DebounceMs > 0 {
		return time.Duration(t.DebounceMs) * time.Millisecond
	}
	return DefaultHoverDebounce
}

// Validate checks the variant is known and internally consistent.
func (t TriggerConfig) Validate() error {
	switch t.Kind {
	case TriggerHover, TriggerClick:
		return nil
	case TriggerViewportExit:
		if t.Sentinel.TopOffset < 0 {
			return &ConfigurationError{Reason: "sentinel top_offset must not be negative"}
		}
		return nil
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unknown trigger kind %q", t.Kind)}
	}
}

// TriggerFromMap decodes a loosely-typed trigger description (as produced
// by YAML scenario files) into a TriggerConfig, dispatching on "kind".
func TriggerFromMap(raw map[string]any) (TriggerConfig, error) {
	var cfg TriggerConfig
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return TriggerConfig{}, fmt.Errorf("failed to decode trigger config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return TriggerConfig{}, err
	}
	return cfg, nil
}
