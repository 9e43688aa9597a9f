package memory

import (
	"fmt"
	"strings"

	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// Element is one node of the in-memory document tree.
type Element struct {
	host *Host

	tag     string
	id      string
	classes map[string]struct{}
	attrs   map[string]string

	parent   *Element
	children []*Element

	// top is the element's absolute vertical position in the document,
	// in pixels. BoundingTop subtracts the host scroll offset.
	top float64

	listeners      map[string]map[int]func()
	nextListenerID int

	animations []*Handle
}

var _ ports.Element = (*Element)(nil)

func newElement(h *Host, tag string) *Element {
	return &Element{
		host:      h,
		tag:       strings.ToLower(tag),
		classes:   make(map[string]struct{}),
		attrs:     make(map[string]string),
		listeners: make(map[string]map[int]func()),
	}
}

func (e *Element) TagName() string { return e.tag }
func (e *Element) ID() string      { return e.id }

// SetID assigns the element id. Test/scenario helper.
func (e *Element) SetID(id string) { e.id = id }

// SetTop positions the element at an absolute document offset.
func (e *Element) SetTop(top float64) { e.top = top }

func (e *Element) Contains(other ports.Element) bool {
	el, ok := other.(*Element)
	if !ok {
		return false
	}
	for cur := el; cur != nil; cur = cur.parent {
		if cur == e {
			return true
		}
	}
	return false
}

func (e *Element) IsConnected() bool {
	for cur := e; cur != nil; cur = cur.parent {
		if cur == e.host.doc {
			return true
		}
	}
	return false
}

func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttribute(name, value string) {
	e.attrs[name] = value
	if name == "style" {
		// Absolute-positioned elements take their document offset from
		// the inline style, like the sentinel marker does.
		if top, ok := parseStyleTop(value); ok {
			e.top = top
		}
	}
}
func (e *Element) RemoveAttribute(name string)     { delete(e.attrs, name) }

func (e *Element) AddClass(name string)    { e.classes[name] = struct{}{} }
func (e *Element) RemoveClass(name string) { delete(e.classes, name) }

// HasClass reports class membership. Test helper.
func (e *Element) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

func (e *Element) AppendChild(child ports.Element) {
	el, ok := child.(*Element)
	if !ok {
		return
	}
	if el.parent != nil {
		el.detach()
	}
	el.parent = e
	e.children = append(e.children, el)
}

func (e *Element) Remove() {
	e.detach()
}

func (e *Element) detach() {
	if e.parent == nil {
		return
	}
	siblings := e.parent.children
	for i, c := range siblings {
		if c == e {
			e.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	e.parent = nil
}

func (e *Element) BoundingTop() float64 {
	return e.top - e.host.scrollY
}

func (e *Element) AddEventListener(event string, fn func()) (remove func()) {
	if e.listeners[event] == nil {
		e.listeners[event] = make(map[int]func())
	}
	id := e.nextListenerID
	e.nextListenerID++
	e.listeners[event][id] = fn
	return func() {
		delete(e.listeners[event], id)
	}
}

// Dispatch fires every listener registered for event, synchronously, in
// registration order.
func (e *Element) Dispatch(event string) {
	reg := e.listeners[event]
	ids := make([]int, 0, len(reg))
	for id := range reg {
		ids = append(ids, id)
	}
	// map iteration order is random; restore registration order
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	for _, id := range ids {
		if fn, ok := reg[id]; ok {
			fn()
		}
	}
}

// ListenerCount reports how many listeners are registered for event.
// Test helper for teardown assertions.
func (e *Element) ListenerCount(event string) int {
	return len(e.listeners[event])
}

func (e *Element) Animate(frames []domain.Keyframe, timing domain.Timing) (ports.PlaybackHandle, error) {
	if !e.host.timelineAnimation {
		return nil, ports.ErrUnsupported
	}
	h := &Handle{
		host:   e.host,
		el:     e,
		frames: frames,
		timing: timing,
		rate:   1,
	}
	e.animations = append(e.animations, h)
	e.host.animations = append(e.host.animations, h)
	return h, nil
}

// Animations returns every handle ever created on this element,
// including canceled ones. Test helper.
func (e *Element) Animations() []*Handle {
	return e.animations
}

// parseStyleTop extracts a "top:<n>px" declaration from an inline style.
func parseStyleTop(style string) (float64, bool) {
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(name) != "top" {
			continue
		}
		value = strings.TrimSuffix(strings.TrimSpace(value), "px")
		var top float64
		if _, err := fmt.Sscanf(value, "%g", &top); err == nil {
			return top, true
		}
	}
	return 0, false
}

// walk visits e and its descendants depth-first in document order.
func (e *Element) walk(visit func(*Element) bool) bool {
	if !visit(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}
