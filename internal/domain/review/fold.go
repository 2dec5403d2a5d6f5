package review

import (
	"encoding/json"

	"github.com/Fordjour12/seila/internal/domain/event"
)

// FoldHandledTypes returns the event types handled by the review fold.
func FoldHandledTypes() []event.Type {
	return []event.Type{
		EventTypeStarted,
		EventTypeAdvanced,
		EventTypeClosed,
		EventTypeSkipped,
	}
}

// Fold applies an event to review state. Events referencing a review other
// than the current one are no-ops.
func Fold(state State, evt event.Event) State {
	switch evt.Type {
	case EventTypeStarted:
		var payload StartedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		if payload.ReviewID == "" || state.Current != nil {
			return state
		}
		state.Current = &Review{
			ID:        payload.ReviewID,
			Phase:     PhaseLookback,
			StartedAt: evt.OccurredAt,
		}
	case EventTypeAdvanced:
		var payload AdvancedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		current, ok := currentMatching(state, payload.ReviewID)
		if !ok {
			return state
		}
		next, ok := current.Phase.Next()
		if !ok {
			return state
		}
		current.Phase = next
		applyAnswers(&current, payload)
		state.Current = &current
	case EventTypeClosed:
		var payload ClosedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		current, ok := currentMatching(state, payload.ReviewID)
		if !ok {
			return state
		}
		if payload.Intentions != nil {
			current.Intentions = append([]string(nil), (*payload.Intentions)...)
		}
		current.Phase = PhaseClosed
		current.ClosedAt = evt.OccurredAt
		state.History = append(state.History, current)
		state.Current = nil
	case EventTypeSkipped:
		var payload SkippedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		if _, ok := currentMatching(state, payload.ReviewID); !ok {
			return state
		}
		// Skipped reviews are discarded without entering history.
		state.Current = nil
	}
	return state
}

func currentMatching(state State, reviewID string) (Review, bool) {
	if state.Current == nil || reviewID == "" || state.Current.ID != reviewID {
		return Review{}, false
	}
	return *state.Current, true
}

func applyAnswers(r *Review, payload AdvancedPayload) {
	if payload.FeltGood != nil {
		r.FeltGood = *payload.FeltGood
	}
	if payload.FeltHard != nil {
		r.FeltHard = *payload.FeltHard
	}
	if payload.CarryForward != nil {
		r.CarryForward = *payload.CarryForward
	}
	if payload.Intentions != nil {
		r.Intentions = append([]string(nil), (*payload.Intentions)...)
	}
}
