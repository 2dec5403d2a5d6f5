package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

const (
	CommandTypeCreate          command.Type = "task.create"
	CommandTypeUpdate          command.Type = "task.update"
	CommandTypeChangeStatus    command.Type = "task.change_status"
	CommandTypeBlock           command.Type = "task.block"
	CommandTypeUnblock         command.Type = "task.unblock"
	CommandTypeAddSubtask      command.Type = "task.add_subtask"
	CommandTypeCompleteSubtask command.Type = "task.complete_subtask"

	EventTypeCreated          event.Type = "task.created"
	EventTypeUpdated          event.Type = "task.updated"
	EventTypeStatusChanged    event.Type = "task.status_changed"
	EventTypeBlocked          event.Type = "task.blocked"
	EventTypeUnblocked        event.Type = "task.unblocked"
	EventTypeSubtaskAdded     event.Type = "task.subtask_added"
	EventTypeSubtaskCompleted event.Type = "task.subtask_completed"

	rejectionCodeTaskIDRequired        = "TASK_ID_REQUIRED"
	rejectionCodeTaskTitleEmpty        = "TASK_TITLE_EMPTY"
	rejectionCodeTaskAlreadyExists     = "TASK_ALREADY_EXISTS"
	rejectionCodeTaskNotFound          = "TASK_NOT_FOUND"
	rejectionCodeTaskStatusInvalid     = "TASK_STATUS_INVALID"
	rejectionCodeTaskFocusCapacity     = "TASK_FOCUS_CAPACITY"
	rejectionCodeTaskBlockerNotFound   = "TASK_BLOCKER_NOT_FOUND"
	rejectionCodeTaskBlockCycle        = "TASK_BLOCK_CYCLE"
	rejectionCodeTaskSubtaskIDRequired = "TASK_SUBTASK_ID_REQUIRED"
	rejectionCodeTaskSubtaskNotFound   = "TASK_SUBTASK_NOT_FOUND"

	entityType = "task"

	// blockWalkDepthCap bounds the dependency walk used for cycle
	// detection. Chains deeper than this are rejected as if cyclic.
	blockWalkDepthCap = 64
)

// Decide returns the decision for a task command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}

	switch cmd.Type {
	case CommandTypeCreate:
		return decideCreate(state, cmd, now)
	case CommandTypeUpdate:
		return decideUpdate(state, cmd, now)
	case CommandTypeChangeStatus:
		return decideChangeStatus(state, cmd, now)
	case CommandTypeBlock:
		return decideBlock(state, cmd, now)
	case CommandTypeUnblock:
		return decideUnblock(state, cmd, now)
	case CommandTypeAddSubtask:
		return decideAddSubtask(state, cmd, now)
	case CommandTypeCompleteSubtask:
		return decideCompleteSubtask(state, cmd, now)
	}
	return command.Decision{}
}

func decideCreate(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload CreatePayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	payload.TaskID = strings.TrimSpace(payload.TaskID)
	if payload.TaskID == "" {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeTaskIDRequired,
			Message: "task id is required",
		})
	}
	if _, exists := state.Tasks[payload.TaskID]; exists {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeTaskAlreadyExists,
			Message: "task already exists",
		})
	}
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeTaskTitleEmpty,
			Message: "title is required",
		})
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, EventTypeCreated, entityType, payload.TaskID, payloadJSON, now().UTC())
	return command.Accept(evt)
}

func decideUpdate(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload UpdatePayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if rejection, ok := requireTask(state, &payload.TaskID); !ok {
		return command.Reject(rejection)
	}
	if payload.Title != nil {
		trimmed := strings.TrimSpace(*payload.Title)
		if trimmed == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeTaskTitleEmpty,
				Message: "title is required",
			})
		}
		payload.Title = &trimmed
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, EventTypeUpdated, entityType, payload.TaskID, payloadJSON, now().UTC())
	return command.Accept(evt)
}

func decideChangeStatus(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload StatusPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if rejection, ok := requireTask(state, &payload.TaskID); !ok {
		return command.Reject(rejection)
	}
	if !payload.Status.IsValid() {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeTaskStatusInvalid,
			Message: fmt.Sprintf("unknown status %q", payload.Status),
		})
	}
	// Focus is capacity-limited here, not in the fold, so replaying
	// history never drops an already-recorded transition.
	if payload.Status == StatusFocus && state.Tasks[payload.TaskID].Status != StatusFocus {
		if FocusCount(state) >= FocusCapacity {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeTaskFocusCapacity,
				Message: fmt.Sprintf("at most %d tasks can be in focus", FocusCapacity),
			})
		}
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, EventTypeStatusChanged, entityType, payload.TaskID, payloadJSON, now().UTC())
	return command.Accept(evt)
}

func decideBlock(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload BlockPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if rejection, ok := requireTask(state, &payload.TaskID); !ok {
		return command.Reject(rejection)
	}
	payload.BlockedByTaskID = strings.TrimSpace(payload.BlockedByTaskID)
	if _, exists := state.Tasks[payload.BlockedByTaskID]; !exists {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeTaskBlockerNotFound,
			Message: "blocking task not found",
		})
	}
	if blockWouldCycle(state, payload.TaskID, payload.BlockedByTaskID) {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeTaskBlockCycle,
			Message: "blocking this task would create a dependency cycle",
		})
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, EventTypeBlocked, entityType, payload.TaskID, payloadJSON, now().UTC())
	return command.Accept(evt)
}

func decideUnblock(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload UnblockPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if rejection, ok := requireTask(state, &payload.TaskID); !ok {
		return command.Reject(rejection)
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, EventTypeUnblocked, entityType, payload.TaskID, payloadJSON, now().UTC())
	return command.Accept(evt)
}

func decideAddSubtask(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload SubtaskAddPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if rejection, ok := requireTask(state, &payload.TaskID); !ok {
		return command.Reject(rejection)
	}
	payload.SubtaskID = strings.TrimSpace(payload.SubtaskID)
	if payload.SubtaskID == "" {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeTaskSubtaskIDRequired,
			Message: "subtask id is required",
		})
	}
	payload.Title = strings.TrimSpace(payload.Title)
	if payload.Title == "" {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeTaskTitleEmpty,
			Message: "title is required",
		})
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, EventTypeSubtaskAdded, entityType, payload.TaskID, payloadJSON, now().UTC())
	return command.Accept(evt)
}

func decideCompleteSubtask(state State, cmd command.Command, now func() time.Time) command.Decision {
	var payload SubtaskCompletePayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	if rejection, ok := requireTask(state, &payload.TaskID); !ok {
		return command.Reject(rejection)
	}
	payload.SubtaskID = strings.TrimSpace(payload.SubtaskID)
	found := false
	for _, sub := range state.Tasks[payload.TaskID].Subtasks {
		if sub.ID == payload.SubtaskID {
			found = true
			break
		}
	}
	if !found {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeTaskSubtaskNotFound,
			Message: "subtask not found",
		})
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, EventTypeSubtaskCompleted, entityType, payload.TaskID, payloadJSON, now().UTC())
	return command.Accept(evt)
}

func requireTask(state State, taskID *string) (command.Rejection, bool) {
	*taskID = strings.TrimSpace(*taskID)
	if *taskID == "" {
		return command.Rejection{
			Code:    rejectionCodeTaskIDRequired,
			Message: "task id is required",
		}, false
	}
	if _, exists := state.Tasks[*taskID]; !exists {
		return command.Rejection{
			Code:    rejectionCodeTaskNotFound,
			Message: "task not found",
		}, false
	}
	return command.Rejection{}, true
}

// blockWouldCycle walks the BlockedByTaskID chain starting from the proposed
// blocker. The walk is bounded; a chain deeper than the cap is treated as a
// cycle rather than walked indefinitely.
func blockWouldCycle(state State, taskID, blockerID string) bool {
	current := blockerID
	for depth := 0; depth < blockWalkDepthCap; depth++ {
		if current == taskID {
			return true
		}
		next, ok := state.Tasks[current]
		if !ok || next.BlockedByTaskID == "" {
			return false
		}
		current = next.BlockedByTaskID
	}
	return true
}
