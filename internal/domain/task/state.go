package task

import (
	"sort"
	"time"
)

// Status is the lifecycle bucket a task sits in.
type Status string

const (
	StatusInbox     Status = "inbox"
	StatusFocus     Status = "focus"
	StatusDeferred  Status = "deferred"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// FocusCapacity is the maximum number of tasks allowed in focus at once.
const FocusCapacity = 3

// IsValid reports whether the status is one of the known buckets.
func (s Status) IsValid() bool {
	switch s {
	case StatusInbox, StatusFocus, StatusDeferred, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

// Subtask is a checklist item under a task.
type Subtask struct {
	ID          string
	Title       string
	CompletedAt time.Time
}

// Task is the folded view of a single task.
type Task struct {
	ID              string
	Title           string
	Status          Status
	DueAt           time.Time
	Priority        int
	BlockedByTaskID string
	Subtasks        []Subtask
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// State is the folded view of all tasks for a user.
type State struct {
	Tasks map[string]Task
}

// InitialState returns the empty task state.
func InitialState() State {
	return State{Tasks: make(map[string]Task)}
}

// ByStatus returns tasks in the given bucket, ordered by id for stable
// output.
func ByStatus(state State, status Status) []Task {
	var out []Task
	for _, t := range state.Tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FocusCount returns the number of tasks currently in focus.
func FocusCount(state State) int {
	n := 0
	for _, t := range state.Tasks {
		if t.Status == StatusFocus {
			n++
		}
	}
	return n
}
