package task

import (
	"testing"
	"time"

	"github.com/Fordjour12/seila/internal/domain/command"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
}

func decide(t *testing.T, state State, cmdType command.Type, payload any) command.Decision {
	t.Helper()
	return Decide(state, command.Command{
		UserID:         "user-1",
		Type:           cmdType,
		IdempotencyKey: "key-1",
		PayloadJSON:    mustPayload(t, payload),
	}, fixedNow)
}

func stateWith(t *testing.T, ids ...string) State {
	t.Helper()
	state := InitialState()
	for _, id := range ids {
		state = Fold(state, createdEvent(t, id, "Task "+id, fixedNow()))
	}
	return state
}

func requireRejection(t *testing.T, decision command.Decision, code string) {
	t.Helper()
	if len(decision.Events) != 0 {
		t.Fatalf("expected no events, got %d", len(decision.Events))
	}
	if len(decision.Rejections) != 1 || decision.Rejections[0].Code != code {
		t.Fatalf("expected rejection %s, got %v", code, decision.Rejections)
	}
}

func TestDecideCreateValidation(t *testing.T) {
	decision := decide(t, InitialState(), CommandTypeCreate, CreatePayload{TaskID: "t1"})
	requireRejection(t, decision, rejectionCodeTaskTitleEmpty)

	decision = decide(t, stateWith(t, "t1"), CommandTypeCreate, CreatePayload{TaskID: "t1", Title: "Again"})
	requireRejection(t, decision, rejectionCodeTaskAlreadyExists)
}

func TestDecideFocusCapacity(t *testing.T) {
	state := stateWith(t, "t1", "t2", "t3", "t4")
	for _, id := range []string{"t1", "t2", "t3"} {
		decision := decide(t, state, CommandTypeChangeStatus, StatusPayload{TaskID: id, Status: StatusFocus})
		if len(decision.Events) != 1 {
			t.Fatalf("expected focus accepted for %s, got %v", id, decision.Rejections)
		}
		state = Fold(state, decision.Events[0])
	}

	decision := decide(t, state, CommandTypeChangeStatus, StatusPayload{TaskID: "t4", Status: StatusFocus})
	requireRejection(t, decision, rejectionCodeTaskFocusCapacity)

	// A task already in focus can re-assert focus without consuming
	// capacity.
	decision = decide(t, state, CommandTypeChangeStatus, StatusPayload{TaskID: "t1", Status: StatusFocus})
	if len(decision.Events) != 1 {
		t.Fatalf("expected re-focus accepted, got %v", decision.Rejections)
	}
}

func TestDecideChangeStatusInvalid(t *testing.T) {
	decision := decide(t, stateWith(t, "t1"), CommandTypeChangeStatus, StatusPayload{TaskID: "t1", Status: "someday"})
	requireRejection(t, decision, rejectionCodeTaskStatusInvalid)
}

func TestDecideBlockCycles(t *testing.T) {
	state := stateWith(t, "a", "b", "c")

	// a <- b <- c is fine.
	decision := decide(t, state, CommandTypeBlock, BlockPayload{TaskID: "b", BlockedByTaskID: "a"})
	if len(decision.Events) != 1 {
		t.Fatalf("expected block accepted, got %v", decision.Rejections)
	}
	state = Fold(state, decision.Events[0])

	decision = decide(t, state, CommandTypeBlock, BlockPayload{TaskID: "c", BlockedByTaskID: "b"})
	if len(decision.Events) != 1 {
		t.Fatalf("expected block accepted, got %v", decision.Rejections)
	}
	state = Fold(state, decision.Events[0])

	// Closing the loop is rejected at any distance.
	decision = decide(t, state, CommandTypeBlock, BlockPayload{TaskID: "a", BlockedByTaskID: "c"})
	requireRejection(t, decision, rejectionCodeTaskBlockCycle)

	// Direct self-block is the degenerate cycle.
	decision = decide(t, state, CommandTypeBlock, BlockPayload{TaskID: "a", BlockedByTaskID: "a"})
	requireRejection(t, decision, rejectionCodeTaskBlockCycle)
}

func TestDecideBlockUnknownBlocker(t *testing.T) {
	decision := decide(t, stateWith(t, "t1"), CommandTypeBlock, BlockPayload{TaskID: "t1", BlockedByTaskID: "ghost"})
	requireRejection(t, decision, rejectionCodeTaskBlockerNotFound)
}

func TestDecideSubtasks(t *testing.T) {
	state := stateWith(t, "t1")

	decision := decide(t, state, CommandTypeAddSubtask, SubtaskAddPayload{TaskID: "t1", SubtaskID: "s1", Title: "Step"})
	if len(decision.Events) != 1 {
		t.Fatalf("expected add accepted, got %v", decision.Rejections)
	}
	state = Fold(state, decision.Events[0])

	decision = decide(t, state, CommandTypeCompleteSubtask, SubtaskCompletePayload{TaskID: "t1", SubtaskID: "s1"})
	if len(decision.Events) != 1 {
		t.Fatalf("expected complete accepted, got %v", decision.Rejections)
	}

	decision = decide(t, state, CommandTypeCompleteSubtask, SubtaskCompletePayload{TaskID: "t1", SubtaskID: "ghost"})
	requireRejection(t, decision, rejectionCodeTaskSubtaskNotFound)
}

func TestDecideUnknownTask(t *testing.T) {
	decision := decide(t, InitialState(), CommandTypeUpdate, UpdatePayload{TaskID: "ghost"})
	requireRejection(t, decision, rejectionCodeTaskNotFound)
}
