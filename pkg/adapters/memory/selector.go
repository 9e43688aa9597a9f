package memory

import (
	"fmt"
	"strings"

	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// simpleSelector is one segment of a descendant chain: [tag][#id][.class]*
// or the universal "*".
type simpleSelector struct {
	tag     string
	id      string
	classes []string
	any     bool
}

func (s simpleSelector) matches(e *Element) bool {
	if s.any {
		return true
	}
	if s.tag != "" && e.tag != s.tag {
		return false
	}
	if s.id != "" && e.id != s.id {
		return false
	}
	for _, c := range s.classes {
		if !e.HasClass(c) {
			return false
		}
	}
	return true
}

// parseSelector compiles a whitespace-separated descendant chain.
// Anything outside the supported grammar is ErrInvalidSelector.
func parseSelector(selector string) ([]simpleSelector, error) {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty selector", ports.ErrInvalidSelector)
	}
	parts := strings.Fields(trimmed)
	chain := make([]simpleSelector, 0, len(parts))
	for _, part := range parts {
		simple, err := parseSimple(part)
		if err != nil {
			return nil, err
		}
		chain = append(chain, simple)
	}
	return chain, nil
}

func parseSimple(part string) (simpleSelector, error) {
	if part == "*" {
		return simpleSelector{any: true}, nil
	}
	var sel simpleSelector
	rest := part
	// leading tag name
	i := 0
	for i < len(rest) && isNameChar(rest[i]) {
		i++
	}
	sel.tag = strings.ToLower(rest[:i])
	rest = rest[i:]

	for rest != "" {
		kind := rest[0]
		if kind != '#' && kind != '.' {
			return simpleSelector{}, fmt.Errorf("%w: unexpected %q in %q", ports.ErrInvalidSelector, string(kind), part)
		}
		rest = rest[1:]
		j := 0
		for j < len(rest) && isNameChar(rest[j]) {
			j++
		}
		if j == 0 {
			return simpleSelector{}, fmt.Errorf("%w: empty name after %q in %q", ports.ErrInvalidSelector, string(kind), part)
		}
		name := rest[:j]
		rest = rest[j:]
		switch kind {
		case '#':
			if sel.id != "" {
				return simpleSelector{}, fmt.Errorf("%w: multiple ids in %q", ports.ErrInvalidSelector, part)
			}
			sel.id = name
		case '.':
			sel.classes = append(sel.classes, name)
		}
	}
	if sel.tag == "" && sel.id == "" && len(sel.classes) == 0 {
		return simpleSelector{}, fmt.Errorf("%w: empty selector part %q", ports.ErrInvalidSelector, part)
	}
	return sel, nil
}

func isNameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// queryFirst returns the first descendant of scope (excluding scope
// itself) matching the chain, in document order.
func queryFirst(scope *Element, chain []simpleSelector) *Element {
	var found *Element
	for _, child := range scope.children {
		child.walk(func(e *Element) bool {
			if matchesChain(e, chain, scope) {
				found = e
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

// matchesChain checks e against the last segment and walks ancestors
// (up to, but excluding, scope) for the earlier segments.
func matchesChain(e *Element, chain []simpleSelector, scope *Element) bool {
	last := len(chain) - 1
	if !chain[last].matches(e) {
		return false
	}
	idx := last - 1
	for cur := e.parent; cur != nil && cur != scope && idx >= 0; cur = cur.parent {
		if chain[idx].matches(cur) {
			idx--
		}
	}
	return idx < 0
}
