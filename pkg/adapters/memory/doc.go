/*
Package memory implements ports.Host entirely in process: an element
tree with a small selector engine, recording animation handles, a manual
frame/timer clock, and a scroll-driven viewport observer.

It exists for tests, examples and the CLI scenario runner: everything
is deterministic and driven explicitly (StepFrame, Advance, SetScrollY).
Feature toggles degrade the host so capability-fallback paths can be
exercised without a real document environment.

The adapter is single-threaded by contract, matching the cooperative
event-driven model of the animator core.
*/
package memory
