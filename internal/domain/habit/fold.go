package habit

import (
	"encoding/json"

	"github.com/Fordjour12/seila/internal/domain/event"
)

// FoldHandledTypes returns the event types handled by the habit fold.
func FoldHandledTypes() []event.Type {
	return []event.Type{
		EventTypeCreated,
		EventTypeUpdated,
		EventTypeArchived,
		EventTypeCompleted,
		EventTypeSkipped,
		EventTypeSnoozed,
	}
}

// Fold applies an event to habit state. Unknown event types and unknown habit
// ids are no-ops.
func Fold(state State, evt event.Event) State {
	switch evt.Type {
	case EventTypeCreated:
		var payload CreatePayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		if payload.HabitID == "" {
			return state
		}
		if state.Active == nil {
			state.Active = make(map[string]Habit)
		}
		state.Active[payload.HabitID] = Habit{
			HabitID:     payload.HabitID,
			Name:        payload.Name,
			Cadence:     payload.Cadence,
			Anchor:      payload.Anchor,
			Difficulty:  payload.Difficulty,
			TargetValue: payload.TargetValue,
			TargetUnit:  payload.TargetUnit,
			Timezone:    payload.Timezone,
		}
	case EventTypeUpdated:
		var payload UpdatePayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		habit, ok := state.Active[payload.HabitID]
		if !ok {
			return state
		}
		if payload.Name != nil {
			habit.Name = *payload.Name
		}
		if payload.Cadence != nil {
			habit.Cadence = *payload.Cadence
		}
		if payload.Anchor != nil {
			habit.Anchor = *payload.Anchor
		}
		if payload.Difficulty != nil {
			habit.Difficulty = *payload.Difficulty
		}
		if payload.TargetValue != nil {
			habit.TargetValue = *payload.TargetValue
		}
		if payload.TargetUnit != nil {
			habit.TargetUnit = *payload.TargetUnit
		}
		if payload.Timezone != nil {
			habit.Timezone = *payload.Timezone
		}
		state.Active[payload.HabitID] = habit
	case EventTypeArchived:
		var payload ArchivePayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		if _, ok := state.Active[payload.HabitID]; !ok {
			return state
		}
		delete(state.Active, payload.HabitID)
		delete(state.Log, payload.HabitID)
	case EventTypeCompleted:
		var payload CompletePayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		state = foldLog(state, payload.HabitID, LogEntry{
			HabitID:    payload.HabitID,
			Status:     LogStatusCompleted,
			OccurredAt: evt.OccurredAt,
			Value:      payload.Value,
		})
	case EventTypeSkipped:
		var payload SkipPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		state = foldLog(state, payload.HabitID, LogEntry{
			HabitID:    payload.HabitID,
			Status:     LogStatusSkipped,
			OccurredAt: evt.OccurredAt,
		})
	case EventTypeSnoozed:
		var payload SnoozePayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		state = foldLog(state, payload.HabitID, LogEntry{
			HabitID:      payload.HabitID,
			Status:       LogStatusSnoozed,
			OccurredAt:   evt.OccurredAt,
			SnoozedUntil: payload.SnoozedUntil,
		})
	}
	return state
}

func foldLog(state State, habitID string, entry LogEntry) State {
	if habitID == "" {
		return state
	}
	if _, ok := state.Active[habitID]; !ok {
		return state
	}
	if state.Log == nil {
		state.Log = make(map[string]LogEntry)
	}
	state.Log[habitID] = entry
	return state
}
