package command

import (
	"time"

	"github.com/Fordjour12/seila/internal/domain/event"
)

// NewEvent builds an event.Event by copying the shared envelope fields from a
// command. Callers supply the event-specific type, entity addressing, payload,
// and timestamp. This eliminates per-decider boilerplate and ensures that new
// envelope fields are automatically forwarded.
func NewEvent(cmd Command, eventType event.Type, entityType, entityID string, payloadJSON []byte, occurredAt time.Time) event.Event {
	return event.Event{
		UserID:         cmd.UserID,
		Type:           eventType,
		OccurredAt:     occurredAt,
		IdempotencyKey: cmd.IdempotencyKey,
		EntityType:     entityType,
		EntityID:       entityID,
		PayloadJSON:    payloadJSON,
		MetaJSON:       cmd.MetaJSON,
	}
}
