package domain

import "fmt"

// ConfigurationError indicates a programmer error in the animator setup:
// an empty sandbox root set, a forbidden root element, or an options
// combination that is rejected up front. It is fatal to constructing the
// component that reports it.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ParameterError indicates a bad runtime parameter: invalid selector
// syntax, an out-of-sandbox resolution, a forbidden tag, or an element/id
// mismatch. It is always recoverable: the specific query fails and the
// controller continues in a degraded form for that element.
type ParameterError struct {
	Param  string // The offending parameter (selector, tag, id...)
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("parameter error: %s", e.Reason)
	}
	return fmt.Sprintf("parameter error: %s (%s)", e.Reason, e.Param)
}

// InitializationError indicates the target element itself is unusable.
// It is fatal to the whole controller, which ends in the generic "error"
// fallback state.
type InitializationError struct {
	Reason string
	Cause  error
}

func (e *InitializationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("initialization error: %s", e.Reason)
	}
	return fmt.Sprintf("initialization error: %s: %v", e.Reason, e.Cause)
}

func (e *InitializationError) Unwrap() error { return e.Cause }
