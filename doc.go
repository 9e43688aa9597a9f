/*
Package aegis attaches declarative, trigger-driven animations to
elements of a host document, with three guarantees: every instance
cleans up all resources it allocated, degraded environments fall back
gracefully instead of failing, and an instance can only touch elements
its owner explicitly authorized.

The host document is a port (pkg/ports): callers bring their own
binding, and pkg/adapters/memory ships a deterministic in-process host
for tests, examples and the CLI.

Basic usage:

	host := memory.NewHost()
	anim, err := aegis.New(host)
	if err != nil { ... }
	ctrl, err := anim.Attach(card, domain.Options{
		Tracks:  domain.TrackSpec{"target": frames},
		Timing:  domain.Timing{Duration: 300 * time.Millisecond},
		Trigger: domain.TriggerConfig{Kind: domain.TriggerHover},
	})
	defer ctrl.Destroy()

Application-level ownership of many instances lives in pkg/registry.
*/
package aegis
