package event

import (
	"strings"
	"time"
)

// Type identifies the type of a domain event.
type Type string

// Event represents an immutable event in the per-user journal.
//
// Ordering within a user stream is by OccurredAt, ties broken by Seq
// (insertion order). Events are append-only and never mutated once stored.
type Event struct {
	// UserID is the logical partition this event belongs to.
	UserID string
	// Seq is the event sequence number within the user stream (starts at 1).
	// Assigned by storage on append.
	Seq uint64
	// Type identifies the kind of event.
	Type Type
	// OccurredAt is when the event occurred, millisecond precision.
	OccurredAt time.Time
	// IdempotencyKey is the key of the command that produced this event.
	// The store rejects duplicate keys, which makes command retries safe.
	IdempotencyKey string
	// EntityType is the type of entity affected (habit, transaction, task...).
	EntityType string
	// EntityID is the ID of the entity affected.
	EntityID string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
	// MetaJSON holds host-supplied metadata as JSON (device, app version...).
	MetaJSON []byte
}

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Domain returns the domain prefix of the event type (e.g. "habit", "task").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}
