// Package event defines the canonical event envelope and event-type registry
// used by the kernel write path.
//
// Events are immutable facts emitted by accepted decisions. The registry
// enforces envelope completeness and payload validity before persistence
// assigns the sequence number. A stable event contract is the foundation for
// replay determinism and for read-model consumers that depend on the same
// semantic names.
package event
