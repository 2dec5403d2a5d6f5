package task

import "time"

// CreatePayload is the payload for task.create and task.created.
type CreatePayload struct {
	TaskID   string    `json:"task_id"`
	Title    string    `json:"title"`
	DueAt    time.Time `json:"due_at,omitzero"`
	Priority int       `json:"priority,omitempty"`
}

// UpdatePayload is the payload for task.update and task.updated. Nil fields
// are left unchanged.
type UpdatePayload struct {
	TaskID   string     `json:"task_id"`
	Title    *string    `json:"title,omitempty"`
	DueAt    *time.Time `json:"due_at,omitempty"`
	Priority *int       `json:"priority,omitempty"`
}

// StatusPayload is the payload for task.change_status and
// task.status_changed.
type StatusPayload struct {
	TaskID string `json:"task_id"`
	Status Status `json:"status"`
}

// BlockPayload is the payload for task.block and task.blocked.
type BlockPayload struct {
	TaskID          string `json:"task_id"`
	BlockedByTaskID string `json:"blocked_by_task_id"`
}

// UnblockPayload is the payload for task.unblock and task.unblocked.
type UnblockPayload struct {
	TaskID string `json:"task_id"`
}

// SubtaskAddPayload is the payload for task.add_subtask and
// task.subtask_added.
type SubtaskAddPayload struct {
	TaskID    string `json:"task_id"`
	SubtaskID string `json:"subtask_id"`
	Title     string `json:"title"`
}

// SubtaskCompletePayload is the payload for task.complete_subtask and
// task.subtask_completed.
type SubtaskCompletePayload struct {
	TaskID    string `json:"task_id"`
	SubtaskID string `json:"subtask_id"`
}
