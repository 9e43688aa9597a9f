package domain

// Level is the coarse quality tier derived from detected host features.
// It governs which playback algorithm the controller uses.
type Level string

const (
	LevelPremium  Level = "premium"  // view transitions + timeline animation
	LevelEnhanced Level = "enhanced" // timeline animation + compositing
	LevelStandard Level = "standard" // timeline animation only
	LevelFallback Level = "fallback" // instant-seek only
)

// Capabilities is the immutable result of probing the host environment.
// It is computed once per capability cache and never mutated afterwards.
type Capabilities struct {
	TimelineAnimation        bool
	ViewportObserver         bool
	ViewTransitions          bool
	ReducedMotionPreferred   bool
	CompositingSupported     bool
	ReversePlaybackSupported bool
	Level                    Level
}

// LevelFor derives the quality level from the probed feature booleans.
// First match wins; the order is part of the contract.
func LevelFor(c Capabilities) Level {
	switch {
	case c.ViewTransitions && c.TimelineAnimation:
		return LevelPremium
	case c.TimelineAnimation && c.CompositingSupported:
		return LevelEnhanced
	case c.TimelineAnimation:
		return LevelStandard
	default:
		return LevelFallback
	}
}
