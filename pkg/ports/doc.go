/*
Package ports defines the contract between the animator core and the
host document environment (driven side), plus the optional capability
interfaces the core discovers by type assertion.

The base Host interface carries only what every conceivable host has.
Richer features (viewport observation, view transitions, media
preferences) are separate interfaces: a host advertises a feature by
implementing the interface, and may still refuse an individual call with
ErrUnsupported. Capability probes treat a failed assertion and an
ErrUnsupported result identically.
*/
package ports
