// Package storage defines the persistence surfaces the kernel writes
// through. Implementations live in subpackages.
package storage

import (
	"context"
	"errors"

	"github.com/Fordjour12/seila/internal/domain/event"
	"github.com/Fordjour12/seila/internal/suggestion"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrIdempotencyConflict indicates an append raced a command with the same
// idempotency key. The store guarantees at most one append wins.
var ErrIdempotencyConflict = errors.New("idempotency key already used")

// EventStore persists the append-only event log, partitioned by user.
type EventStore interface {
	// AppendEvents atomically appends a decision's events, assigning
	// contiguous sequence numbers. All events share one idempotency key; if
	// the key was already used the append fails with
	// ErrIdempotencyConflict and nothing is written.
	AppendEvents(ctx context.Context, events []event.Event) ([]event.Event, error)
	// FindByIdempotencyKey returns the events previously appended under the
	// key, or ErrNotFound.
	FindByIdempotencyKey(ctx context.Context, userID, key string) ([]event.Event, error)
	// ListEvents returns up to limit events with Seq greater than afterSeq,
	// ordered by Seq ascending.
	ListEvents(ctx context.Context, userID string, afterSeq uint64, limit int) ([]event.Event, error)
	// LatestSeq returns the highest assigned sequence for the user, zero
	// when the log is empty.
	LatestSeq(ctx context.Context, userID string) (uint64, error)
}

// SuggestionStore persists active suggestions keyed by user and policy.
type SuggestionStore interface {
	// ListActive returns the user's active suggestions ordered by policy id.
	ListActive(ctx context.Context, userID string) ([]suggestion.Suggestion, error)
	// Put inserts or replaces a suggestion by id.
	Put(ctx context.Context, s suggestion.Suggestion) error
	// Dismiss marks a suggestion inactive. Dismissing an unknown or already
	// dismissed id is ErrNotFound.
	Dismiss(ctx context.Context, userID, suggestionID string) error
}
