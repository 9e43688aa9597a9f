/*
Package domain contains the core value objects for the Aegis animator.

It defines the declarative configuration a caller hands to the animator
(options, trigger variants, animation tracks), the detected host
capabilities with their derived quality level, the error taxonomy, and
the read-only metrics snapshot. This package is kept pure and free of
external dependencies like I/O or host bindings, following Hexagonal
Architecture principles.

# Key Entities

  - Options: The frozen per-instance configuration (tracks, trigger, timing).
  - TriggerConfig: Tagged union of hover / click / viewport-exit triggers.
  - Capabilities: Immutable result of host feature detection, plus Level.
  - MetricsSnapshot: Observability read-out of a live controller.
*/
package domain
