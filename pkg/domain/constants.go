package domain

// Marker attributes applied to the target element so calling code and
// stylesheets can react to the controller's fate without reaching into
// internals.
const (
	// AttrReady is present (value "true") once a controller reached the
	// Ready state. Removed on destroy.
	AttrReady = "data-animation-ready"

	// AttrDisabled names the reason animation could not be enabled.
	AttrDisabled = "data-animation-disabled"
)

// Values for AttrDisabled.
const (
	DisabledReducedMotion  = "reduced-motion"
	DisabledAPIUnavailable = "api-unavailable"
	DisabledError          = "error"
)
