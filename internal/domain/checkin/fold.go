package checkin

import (
	"encoding/json"

	"github.com/Fordjour12/seila/internal/domain/event"
)

// FoldHandledTypes returns the event types handled by the check-in fold.
func FoldHandledTypes() []event.Type {
	return []event.Type{EventTypeLogged}
}

// Fold applies an event to check-in state. Replayed ids are no-ops so a
// duplicated event never double-counts an entry.
func Fold(state State, evt event.Event) State {
	if evt.Type != EventTypeLogged {
		return state
	}
	var payload LoggedPayload
	_ = json.Unmarshal(evt.PayloadJSON, &payload)
	if payload.CheckinID == "" {
		return state
	}
	for _, c := range state.Checkins {
		if c.ID == payload.CheckinID {
			return state
		}
	}
	at := payload.OccurredAt
	if at.IsZero() {
		at = evt.OccurredAt
	}
	state.Checkins = append(state.Checkins, Checkin{
		ID:         payload.CheckinID,
		Mood:       payload.Mood,
		Energy:     payload.Energy,
		Note:       payload.Note,
		OccurredAt: at,
	})
	return state
}
