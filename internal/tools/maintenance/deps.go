package maintenance

import (
	"context"

	"github.com/Fordjour12/seila/internal/domain/event"
	"github.com/Fordjour12/seila/internal/suggestion"
)

// eventStore is the slice of the event store the sweep reads.
type eventStore interface {
	ListEvents(ctx context.Context, userID string, afterSeq uint64, limit int) ([]event.Event, error)
}

// suggestionStore is the slice of the suggestion store the sweep writes.
type suggestionStore interface {
	ListActive(ctx context.Context, userID string) ([]suggestion.Suggestion, error)
	Put(ctx context.Context, s suggestion.Suggestion) error
	Dismiss(ctx context.Context, userID, suggestionID string) error
}
