package domain

import "fmt"

// MaxChildSelectors caps how many child elements one controller may
// resolve through its sandbox. Exceeding it is a construction-time
// failure, not a runtime clamp.
const MaxChildSelectors = 10

// Options is the frozen per-instance configuration for one controller.
// The controller copies what it needs at construction; mutating an
// Options value afterwards has no defined effect.
type Options struct {
	// ID optionally asserts the identity of the target element. When
	// set, construction fails if the target's id does not match.
	ID string `yaml:"id,omitempty" mapstructure:"id"`

	// ChildSelectors maps logical names to selectors resolved through
	// the controller's sandbox. At most MaxChildSelectors entries.
	ChildSelectors map[string]string `yaml:"child_selectors,omitempty" mapstructure:"child_selectors"`

	// Tracks holds the keyframes per logical track name. The "target"
	// entry is mandatory.
	Tracks TrackSpec `yaml:"tracks" mapstructure:"tracks"`

	// Timing is shared by every track of this controller.
	Timing Timing `yaml:"timing" mapstructure:"timing"`

	// Trigger selects the state machine wiring.
	Trigger TriggerConfig `yaml:"trigger" mapstructure:"trigger"`

	// RevertOnHover forces the un-triggered visual state while the
	// pointer rests on the element. Only meaningful for click and
	// viewport-exit triggers; combining it with a hover trigger is
	// rejected at construction.
	RevertOnHover bool `yaml:"revert_on_hover,omitempty" mapstructure:"revert_on_hover"`

	// TransitionName is applied as a view-transition hint, only when the
	// premium capability level is active.
	TransitionName string `yaml:"transition_name,omitempty" mapstructure:"transition_name"`
}

// Validate rejects option combinations that can never construct a
// working controller. Element-dependent checks (id match, containment)
// happen later, against the live host.
func (o Options) Validate() error {
	if len(o.Tracks) == 0 {
		return &ConfigurationError{Reason: "at least one animation track is required"}
	}
	if _, ok := o.Tracks[TrackTarget]; !ok {
		return &ConfigurationError{Reason: fmt.Sprintf("a %q track is required", TrackTarget)}
	}
	if len(o.ChildSelectors) > MaxChildSelectors {
		return &ConfigurationError{Reason: fmt.Sprintf("too many child selectors: %d (max %d)", len(o.ChildSelectors), MaxChildSelectors)}
	}
	if err := o.Trigger.Validate(); err != nil {
		return err
	}
	if o.RevertOnHover && o.Trigger.Kind == TriggerHover {
		return &ConfigurationError{Reason: "revert_on_hover cannot be combined with a hover trigger"}
	}
	for name := range o.Tracks {
		if name == TrackTarget {
			continue
		}
		if _, ok := o.ChildSelectors[name]; !ok {
			return &ConfigurationError{Reason: fmt.Sprintf("track %q has no matching child selector", name)}
		}
	}
	return nil
}
