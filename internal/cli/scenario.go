// Package cli implements the scenario runner behind the aegis command:
// it builds an in-memory host from a YAML description, attaches
// animators, and replays a scripted event sequence against them.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/DavidOsipov/Aegis-Animator/pkg/adapters/memory"
	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
)

// Scenario is one self-contained simulation: a document tree, a set of
// animator attachments, and a script of host events.
type Scenario struct {
	ViewportHeight float64        `yaml:"viewport_height"`
	ReducedMotion  bool           `yaml:"reduced_motion"`
	Disable        []string       `yaml:"disable"`
	Elements       []ElementSpec  `yaml:"elements"`
	Animators      []AnimatorSpec `yaml:"animators"`
	Script         []Step         `yaml:"script"`
}

// ElementSpec declares one element of the document tree.
type ElementSpec struct {
	Tag      string        `yaml:"tag"`
	ID       string        `yaml:"id"`
	Classes  []string      `yaml:"classes"`
	Top      float64       `yaml:"top"`
	Children []ElementSpec `yaml:"children"`
}

// AnimatorSpec attaches one animator. Options stays loosely typed in
// YAML and is decoded through mapstructure so durations can be written
// as "300ms" and the trigger union dispatches on its kind field.
type AnimatorSpec struct {
	Target  string         `yaml:"target"`
	Options map[string]any `yaml:"options"`
}

// Step is one scripted host event.
type Step struct {
	Event    string  `yaml:"event"` // hover | unhover | click | scroll | wait | frame
	Target   string  `yaml:"target"`
	To       float64 `yaml:"to"`       // scroll offset
	Duration string  `yaml:"duration"` // wait delay, e.g. "150ms"
}

// LoadScenario parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if len(sc.Animators) == 0 {
		return nil, fmt.Errorf("scenario declares no animators")
	}
	return &sc, nil
}

// HostOptions translates the scenario toggles into memory host options.
func (s *Scenario) HostOptions() ([]memory.Option, error) {
	var opts []memory.Option
	if s.ViewportHeight > 0 {
		opts = append(opts, memory.WithViewportHeight(s.ViewportHeight))
	}
	if s.ReducedMotion {
		opts = append(opts, memory.WithReducedMotion())
	}
	for _, feature := range s.Disable {
		switch feature {
		case "timeline-animation":
			opts = append(opts, memory.WithoutTimelineAnimation())
		case "reverse-playback":
			opts = append(opts, memory.WithoutReversePlayback())
		case "compositing":
			opts = append(opts, memory.WithoutCompositing())
		case "view-transitions":
			opts = append(opts, memory.WithoutViewTransitions())
		case "viewport-observer":
			opts = append(opts, memory.WithoutViewportObserver())
		default:
			return nil, fmt.Errorf("unknown feature %q in disable list", feature)
		}
	}
	return opts, nil
}

// BuildTree materializes the declared elements under the document root.
func (s *Scenario) BuildTree(host *memory.Host) {
	for _, spec := range s.Elements {
		buildElement(host, host.Root(), spec)
	}
}

func buildElement(host *memory.Host, parent *memory.Element, spec ElementSpec) {
	tag := spec.Tag
	if tag == "" {
		tag = "div"
	}
	el := host.NewElement(tag, spec.ID, spec.Classes...)
	el.SetTop(spec.Top)
	parent.AppendChild(el)
	for _, child := range spec.Children {
		buildElement(host, el, child)
	}
}

// DecodeOptions turns the loose YAML options map into typed animator
// options. Durations accept Go syntax ("300ms").
func DecodeOptions(raw map[string]any) (domain.Options, error) {
	var opts domain.Options
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &opts,
	})
	if err != nil {
		return domain.Options{}, fmt.Errorf("failed to build options decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Options{}, fmt.Errorf("failed to decode animator options: %w", err)
	}
	return opts, nil
}

// ParseDelay reads a step duration, defaulting to one debounce interval
// when omitted.
func ParseDelay(s string) (time.Duration, error) {
	if s == "" {
		return domain.DefaultHoverDebounce, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("bad duration %q: %w", s, err)
	}
	return d, nil
}
