package cli

import (
	"fmt"
	"io"
	"log/slog"

	aegis "github.com/DavidOsipov/Aegis-Animator"
	"github.com/DavidOsipov/Aegis-Animator/pkg/adapters/memory"
	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/registry"
)

// Session is a scenario wired into a live host with attached animators.
type Session struct {
	Host     *memory.Host
	Registry *registry.Registry
	scenario *Scenario
	targets  map[string]*memory.Element
	printer  *Printer
}

// NewSession builds the host, the document tree and every declared
// animator. Registry options let the caller wire metrics for serve mode.
func NewSession(sc *Scenario, logger *slog.Logger, printer *Printer, regOpts ...registry.Option) (*Session, error) {
	hostOpts, err := sc.HostOptions()
	if err != nil {
		return nil, err
	}
	host := memory.NewHost(hostOpts...)
	sc.BuildTree(host)

	anim, err := aegis.New(host, aegis.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	reg := registry.New(anim, append([]registry.Option{registry.WithLogger(logger)}, regOpts...)...)

	s := &Session{
		Host:     host,
		Registry: reg,
		scenario: sc,
		targets:  make(map[string]*memory.Element),
		printer:  printer,
	}

	for _, spec := range sc.Animators {
		target, err := s.lookup(spec.Target)
		if err != nil {
			return nil, err
		}
		opts, err := DecodeOptions(spec.Options)
		if err != nil {
			return nil, fmt.Errorf("animator %q: %w", spec.Target, err)
		}
		if _, err := reg.Attach(target, opts); err != nil {
			return nil, fmt.Errorf("animator %q: %w", spec.Target, err)
		}
		s.printer.Attached(spec.Target, describeState(target))
	}

	// Flush the construction-time frame work (viewport initial passes).
	host.StepFrame()
	return s, nil
}

func (s *Session) lookup(selector string) (*memory.Element, error) {
	if el, ok := s.targets[selector]; ok {
		return el, nil
	}
	found, err := s.Host.QueryFirst(selector, nil)
	if err != nil {
		return nil, fmt.Errorf("bad target selector %q: %w", selector, err)
	}
	if found == nil {
		return nil, fmt.Errorf("target %q matches no element", selector)
	}
	el := found.(*memory.Element)
	s.targets[selector] = el
	return el, nil
}

// Run replays the script.
func (s *Session) Run() error {
	for i, step := range s.scenario.Script {
		if err := s.apply(step); err != nil {
			return fmt.Errorf("script step %d (%s): %w", i+1, step.Event, err)
		}
		// Observer and initial-state work is frame-deferred; one step of
		// the frame queue after every event keeps the script readable.
		s.Host.StepFrame()
		s.report(step)
	}
	return nil
}

func (s *Session) apply(step Step) error {
	switch step.Event {
	case "hover", "unhover", "click":
		el, err := s.lookup(step.Target)
		if err != nil {
			return err
		}
		el.Dispatch(hostEvent(step.Event))
	case "scroll":
		s.Host.SetScrollY(step.To)
	case "wait":
		d, err := ParseDelay(step.Duration)
		if err != nil {
			return err
		}
		s.Host.Advance(d)
	case "frame":
		s.Host.StepFrame()
	default:
		return fmt.Errorf("unknown event %q", step.Event)
	}
	return nil
}

func hostEvent(event string) string {
	switch event {
	case "hover":
		return "mouseenter"
	case "unhover":
		return "mouseleave"
	default:
		return event
	}
}

func (s *Session) report(step Step) {
	for _, spec := range s.scenario.Animators {
		el, ok := s.targets[spec.Target]
		if !ok {
			continue
		}
		ctrl, ok := s.Registry.Get(el)
		if !ok {
			continue
		}
		s.printer.Transition(step, spec.Target, ctrl.Triggered(), ctrl.Hovering(), trackRates(el))
	}
}

func trackRates(el *memory.Element) []float64 {
	rates := make([]float64, 0, len(el.Animations()))
	for _, h := range el.Animations() {
		if !h.Canceled() {
			rates = append(rates, h.PlaybackRate())
		}
	}
	return rates
}

// Close tears every instance down.
func (s *Session) Close() {
	s.Registry.DetachAll()
}

// PrintSummary writes the final metrics snapshots.
func (s *Session) PrintSummary(out io.Writer) {
	for _, status := range s.Registry.Statuses() {
		fmt.Fprintf(out, "%s: level=%s transitions=%d errors=%d tracks=%d children=%d init=%s\n",
			status.Target,
			status.Metrics.Level,
			status.Metrics.Transitions,
			status.Metrics.Errors,
			status.Metrics.LiveTracks,
			status.Metrics.ResolvedChildren,
			status.Metrics.InitDuration,
		)
	}
}

func describeState(el *memory.Element) string {
	if v, ok := el.Attribute(domain.AttrDisabled); ok {
		return "disabled: " + v
	}
	if _, ok := el.Attribute(domain.AttrReady); ok {
		return "ready"
	}
	return "inert"
}
