package ports

// ViewportObserving is implemented by hosts that can report whether an
// element intersects the viewport.
type ViewportObserving interface {
	// ObserveViewport watches marker and calls onChange with the
	// intersection state on every change.
	ObserveViewport(marker Element, onChange func(intersecting bool)) (ViewportObservation, error)
}

// ViewportObservation is a live viewport watch.
type ViewportObservation interface {
	Disconnect()
}

// ViewTransitioning is implemented by hosts supporting declarative view
// transitions.
type ViewTransitioning interface {
	SetTransitionName(el Element, name string) error
}

// MediaPreferences is implemented by hosts that expose user media
// preferences.
type MediaPreferences interface {
	PrefersReducedMotion() bool
}

// Compositable is implemented by playback handles that can tell whether
// the track runs on the compositor.
type Compositable interface {
	Composited() bool
}
