package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fordjour12/seila/internal/domain/aggregate"
	"github.com/Fordjour12/seila/internal/domain/event"
)

// DefaultPageSize is the event page size used when the caller passes 0.
const DefaultPageSize = 256

// EventStore is the read surface replay needs from an event store.
type EventStore interface {
	// ListEvents returns up to limit events for the user with Seq greater
	// than afterSeq, ordered by Seq ascending.
	ListEvents(ctx context.Context, userID string, afterSeq uint64, limit int) ([]event.Event, error)
}

// Load folds a user's full event history into composite state, reading in
// pages so unbounded logs never materialize in memory at once.
func Load(ctx context.Context, store EventStore, userID string, pageSize int) (aggregate.State, error) {
	if store == nil {
		return aggregate.State{}, errors.New("event store is required")
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	state := aggregate.InitialState()
	var afterSeq uint64
	for {
		events, err := store.ListEvents(ctx, userID, afterSeq, pageSize)
		if err != nil {
			return aggregate.State{}, fmt.Errorf("list events after seq %d: %w", afterSeq, err)
		}
		if len(events) == 0 {
			return state, nil
		}
		for _, evt := range events {
			if evt.Seq <= afterSeq {
				return aggregate.State{}, fmt.Errorf("event order violated: seq %d after %d", evt.Seq, afterSeq)
			}
			state = aggregate.Fold(state, evt)
			afterSeq = evt.Seq
		}
		if len(events) < pageSize {
			return state, nil
		}
	}
}
