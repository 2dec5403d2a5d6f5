package pattern

import (
	"encoding/json"

	"github.com/Fordjour12/seila/internal/domain/event"
)

// FoldHandledTypes returns the event types handled by the pattern fold.
func FoldHandledTypes() []event.Type {
	return []event.Type{
		EventTypeDetected,
		EventTypeSurfaced,
		EventTypePinned,
		EventTypeDismissed,
		EventTypeExpired,
	}
}

// Fold applies an event to pattern state. Patch events for unknown pattern
// ids are no-ops.
func Fold(state State, evt event.Event) State {
	switch evt.Type {
	case EventTypeDetected:
		var payload DetectedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		if payload.PatternID == "" {
			return state
		}
		if state.Patterns == nil {
			state.Patterns = make(map[string]Pattern)
		}
		// Expiry is fixed at detection time and never extended by later
		// patches.
		state.Patterns[payload.PatternID] = Pattern{
			ID:          payload.PatternID,
			Type:        payload.Type,
			Correlation: payload.Correlation,
			Confidence:  payload.Confidence,
			Headline:    payload.Headline,
			Subtext:     payload.Subtext,
			DetectedAt:  evt.OccurredAt,
			ExpiresAt:   evt.OccurredAt.Add(TTL),
		}
	case EventTypeSurfaced:
		state = patch(state, evt, func(p Pattern) Pattern {
			if p.SurfacedAt.IsZero() {
				p.SurfacedAt = evt.OccurredAt
			}
			return p
		})
	case EventTypePinned:
		state = patch(state, evt, func(p Pattern) Pattern {
			p.PinnedAt = evt.OccurredAt
			return p
		})
	case EventTypeDismissed, EventTypeExpired:
		state = patch(state, evt, func(p Pattern) Pattern {
			if p.DismissedAt.IsZero() {
				p.DismissedAt = evt.OccurredAt
			}
			return p
		})
	}
	return state
}

func patch(state State, evt event.Event, apply func(Pattern) Pattern) State {
	var payload PatchPayload
	_ = json.Unmarshal(evt.PayloadJSON, &payload)
	p, ok := state.Patterns[payload.PatternID]
	if !ok {
		return state
	}
	state.Patterns[payload.PatternID] = apply(p)
	return state
}
