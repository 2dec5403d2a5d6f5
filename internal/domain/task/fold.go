package task

import (
	"encoding/json"

	"github.com/Fordjour12/seila/internal/domain/event"
)

// FoldHandledTypes returns the event types handled by the task fold.
func FoldHandledTypes() []event.Type {
	return []event.Type{
		EventTypeCreated,
		EventTypeUpdated,
		EventTypeStatusChanged,
		EventTypeBlocked,
		EventTypeUnblocked,
		EventTypeSubtaskAdded,
		EventTypeSubtaskCompleted,
	}
}

// Fold applies an event to task state. Events for unknown task ids are
// no-ops. The fold never enforces the focus capacity; that is a command-time
// concern.
func Fold(state State, evt event.Event) State {
	switch evt.Type {
	case EventTypeCreated:
		var payload CreatePayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		if payload.TaskID == "" {
			return state
		}
		if state.Tasks == nil {
			state.Tasks = make(map[string]Task)
		}
		state.Tasks[payload.TaskID] = Task{
			ID:        payload.TaskID,
			Title:     payload.Title,
			Status:    StatusInbox,
			DueAt:     payload.DueAt,
			Priority:  payload.Priority,
			CreatedAt: evt.OccurredAt,
			UpdatedAt: evt.OccurredAt,
		}
	case EventTypeUpdated:
		var payload UpdatePayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		state = patch(state, payload.TaskID, evt, func(t Task) Task {
			if payload.Title != nil {
				t.Title = *payload.Title
			}
			if payload.DueAt != nil {
				t.DueAt = *payload.DueAt
			}
			if payload.Priority != nil {
				t.Priority = *payload.Priority
			}
			return t
		})
	case EventTypeStatusChanged:
		var payload StatusPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		state = patch(state, payload.TaskID, evt, func(t Task) Task {
			if payload.Status.IsValid() {
				t.Status = payload.Status
			}
			return t
		})
	case EventTypeBlocked:
		var payload BlockPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		state = patch(state, payload.TaskID, evt, func(t Task) Task {
			t.BlockedByTaskID = payload.BlockedByTaskID
			return t
		})
	case EventTypeUnblocked:
		var payload UnblockPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		state = patch(state, payload.TaskID, evt, func(t Task) Task {
			t.BlockedByTaskID = ""
			return t
		})
	case EventTypeSubtaskAdded:
		var payload SubtaskAddPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		state = patch(state, payload.TaskID, evt, func(t Task) Task {
			for _, sub := range t.Subtasks {
				if sub.ID == payload.SubtaskID {
					return t
				}
			}
			t.Subtasks = append(t.Subtasks, Subtask{
				ID:    payload.SubtaskID,
				Title: payload.Title,
			})
			return t
		})
	case EventTypeSubtaskCompleted:
		var payload SubtaskCompletePayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		state = patch(state, payload.TaskID, evt, func(t Task) Task {
			for i, sub := range t.Subtasks {
				if sub.ID == payload.SubtaskID && sub.CompletedAt.IsZero() {
					t.Subtasks[i].CompletedAt = evt.OccurredAt
				}
			}
			return t
		})
	}
	return state
}

func patch(state State, taskID string, evt event.Event, apply func(Task) Task) State {
	t, ok := state.Tasks[taskID]
	if !ok {
		return state
	}
	updated := apply(t)
	updated.UpdatedAt = evt.OccurredAt
	state.Tasks[taskID] = updated
	return state
}
