// Package command defines the canonical command envelope and validation entry
// points for the kernel write path.
//
// Commands express user intent from the host client. They are the stable
// boundary before domain deciders, so that business rules are evaluated only
// against normalized inputs. Every command carries a caller-supplied
// idempotency key; the engine checks it against the event journal before any
// decision runs, which makes commands safe to retry over an unreliable
// network.
package command
