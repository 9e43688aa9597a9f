// Package sandbox scopes element resolution to a fixed set of roots.
// Every controller owns exactly one sandbox built over its own target;
// two controllers can never validate against each other's boundaries.
package sandbox

import (
	"errors"
	"fmt"

	"github.com/DavidOsipov/Aegis-Animator/pkg/domain"
	"github.com/DavidOsipov/Aegis-Animator/pkg/ports"
)

// forbiddenRoots are tags that would sandbox "everything". Refusing
// them keeps a misconfigured caller from widening the boundary to the
// whole document.
var forbiddenRoots = map[string]struct{}{
	"html": {},
	"body": {},
	"head": {},
	"main": {},
}

// forbiddenTags are embeddable or executable element kinds a resolution
// must never return, even when contained.
var forbiddenTags = map[string]struct{}{
	"script": {},
	"iframe": {},
	"object": {},
	"embed":  {},
}

// Sandbox resolves selectors and certifies the results as contained
// within its roots.
type Sandbox struct {
	host  ports.Host
	roots []ports.Element

	// fragment is a detached element used to vet selector syntax without
	// touching the live tree.
	fragment ports.Element

	validated map[ports.Element]struct{}
}

// New builds a sandbox over a non-empty ordered set of roots.
func New(host ports.Host, roots ...ports.Element) (*Sandbox, error) {
	if len(roots) == 0 {
		return nil, &domain.ConfigurationError{Reason: "sandbox requires at least one root element"}
	}
	for _, root := range roots {
		if root == nil {
			return nil, &domain.ConfigurationError{Reason: "sandbox root must not be nil"}
		}
		if _, bad := forbiddenRoots[root.TagName()]; bad {
			return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("element %q cannot be a sandbox root", root.TagName())}
		}
	}
	return &Sandbox{
		host:      host,
		roots:     roots,
		fragment:  host.CreateElement("div"),
		validated: make(map[ports.Element]struct{}),
	}, nil
}

// Resolve finds the first match for selector inside scope (the whole
// document when scope is nil) and certifies it against the sandbox
// boundary. A valid selector matching nothing returns nil, nil.
func (s *Sandbox) Resolve(selector string, scope ports.Element) (ports.Element, error) {
	// Vet the syntax against the detached fragment first so a malformed
	// selector never reaches the live tree.
	if _, err := s.host.QueryFirst(selector, s.fragment); err != nil {
		if errors.Is(err, ports.ErrInvalidSelector) {
			return nil, &domain.ParameterError{Param: selector, Reason: "invalid selector syntax"}
		}
		return nil, fmt.Errorf("selector validation failed: %w", err)
	}

	if scope == nil {
		scope = s.host.Document()
	}
	match, err := s.host.QueryFirst(selector, scope)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	if match == nil {
		return nil, nil
	}

	if !s.contains(match) {
		return nil, &domain.ParameterError{Param: selector, Reason: "element resolves outside the sandbox roots"}
	}
	if _, bad := forbiddenTags[match.TagName()]; bad {
		return nil, &domain.ParameterError{Param: match.TagName(), Reason: "forbidden element kind"}
	}

	// Revalidation is a no-op.
	s.validated[match] = struct{}{}
	return match, nil
}

// IsValidated reports whether the sandbox has previously certified el.
func (s *Sandbox) IsValidated(el ports.Element) bool {
	_, ok := s.validated[el]
	return ok
}

// Clear drops every certification. Called on controller teardown.
func (s *Sandbox) Clear() {
	s.validated = make(map[ports.Element]struct{})
}

func (s *Sandbox) contains(el ports.Element) bool {
	for _, root := range s.roots {
		if root.Contains(el) {
			return true
		}
	}
	return false
}
