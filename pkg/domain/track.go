package domain

import "time"

// TrackTarget is the mandatory track name applied to the root element.
// All other track names must correspond to declared child selectors.
const TrackTarget = "target"

// Keyframe is one declarative step of an animation track: a set of
// style properties, optionally pinned to a fractional offset in [0,1].
type Keyframe struct {
	// Offset pins the frame along the timeline. Nil lets the host
	// distribute frames evenly.
	Offset *float64 `yaml:"offset,omitempty" mapstructure:"offset"`

	// Properties maps style property names to their values at this frame.
	Properties map[string]string `yaml:"properties" mapstructure:"properties"`
}

// FillMode mirrors the host animation fill behavior.
type FillMode string

const (
	FillNone     FillMode = "none"
	FillForwards FillMode = "forwards"
	FillBoth     FillMode = "both"
)

// Timing is handed verbatim to the host animation primitive.
type Timing struct {
	Duration time.Duration `yaml:"duration" mapstructure:"duration"`
	Easing   string        `yaml:"easing,omitempty" mapstructure:"easing"`
	Fill     FillMode      `yaml:"fill,omitempty" mapstructure:"fill"`
}

// WithDefaults returns the timing with unset fields resolved.
// The default fill is "both" so tracks hold their extremes between runs.
func (t Timing) WithDefaults() Timing {
	if t.Fill == "" {
		t.Fill = FillBoth
	}
	return t
}

// TrackSpec maps logical track names to keyframe lists. The "target"
// entry is mandatory and applies to the root element; every other entry
// must name a declared child selector.
type TrackSpec map[string][]Keyframe
