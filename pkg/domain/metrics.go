package domain

import "time"

// MetricsSnapshot is a read-only observability view of one controller.
// It is exposed for inspection, never for control.
type MetricsSnapshot struct {
	// InitDuration is how long the construction sequence took.
	InitDuration time.Duration `json:"init_duration"`

	// Transitions counts trigger transitions that actually produced a
	// playback request.
	Transitions uint64 `json:"transitions"`

	// Errors is the cumulative internal error count.
	Errors uint64 `json:"errors"`

	// LiveTracks is the number of animation tracks currently held.
	LiveTracks int `json:"live_tracks"`

	// ResolvedChildren is the number of sandboxed child elements resolved.
	ResolvedChildren int `json:"resolved_children"`

	// Level is the capability level the controller was built under.
	Level Level `json:"level"`
}
