package review

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

func mustPayload(t *testing.T, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func reviewEvent(t *testing.T, eventType event.Type, payload any, at time.Time) event.Event {
	t.Helper()
	return event.Event{
		Type:        eventType,
		OccurredAt:  at,
		PayloadJSON: mustPayload(t, payload),
	}
}

func strPtr(s string) *string { return &s }

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

func TestFoldFullLifecycle(t *testing.T) {
	t0 := fixedNow()
	state := Fold(InitialState(), reviewEvent(t, EventTypeStarted, StartedPayload{ReviewID: "r1"}, t0))
	if state.Current == nil || state.Current.Phase != PhaseLookback {
		t.Fatalf("expected open review in lookback, got %+v", state.Current)
	}

	state = Fold(state, reviewEvent(t, EventTypeAdvanced, AdvancedPayload{ReviewID: "r1"}, t0.Add(time.Minute)))
	if state.Current.Phase != PhaseReflect {
		t.Fatalf("expected reflect, got %q", state.Current.Phase)
	}

	state = Fold(state, reviewEvent(t, EventTypeAdvanced, AdvancedPayload{
		ReviewID: "r1",
		FeltGood: strPtr("shipped the thing"),
		FeltHard: strPtr("late nights"),
	}, t0.Add(2*time.Minute)))
	if state.Current.Phase != PhaseIntentions || state.Current.FeltGood != "shipped the thing" {
		t.Fatalf("expected intentions with answers, got %+v", state.Current)
	}

	intentions := []string{"sleep earlier"}
	closedAt := t0.Add(3 * time.Minute)
	state = Fold(state, reviewEvent(t, EventTypeClosed, ClosedPayload{ReviewID: "r1", Intentions: &intentions}, closedAt))
	if state.Current != nil {
		t.Fatal("expected current slot cleared after close")
	}
	if len(state.History) != 1 || state.History[0].Phase != PhaseClosed || !state.History[0].ClosedAt.Equal(closedAt) {
		t.Fatalf("expected closed review in history, got %v", state.History)
	}
	if len(state.History[0].Intentions) != 1 {
		t.Fatalf("expected intentions carried into history, got %v", state.History[0].Intentions)
	}
}

func TestFoldSkipDiscardsWithoutHistory(t *testing.T) {
	t0 := fixedNow()
	state := Fold(InitialState(), reviewEvent(t, EventTypeStarted, StartedPayload{ReviewID: "r1"}, t0))
	state = Fold(state, reviewEvent(t, EventTypeSkipped, SkippedPayload{ReviewID: "r1"}, t0.Add(time.Minute)))

	if state.Current != nil {
		t.Fatal("expected current slot cleared after skip")
	}
	if len(state.History) != 0 {
		t.Fatalf("expected skipped review absent from history, got %v", state.History)
	}
}

func TestFoldMismatchedReviewIDNoop(t *testing.T) {
	t0 := fixedNow()
	state := Fold(InitialState(), reviewEvent(t, EventTypeStarted, StartedPayload{ReviewID: "r1"}, t0))
	state = Fold(state, reviewEvent(t, EventTypeAdvanced, AdvancedPayload{ReviewID: "r2"}, t0.Add(time.Minute)))

	if state.Current.Phase != PhaseLookback {
		t.Fatalf("expected phase unchanged, got %q", state.Current.Phase)
	}
}

func TestDecideSingleOpenReview(t *testing.T) {
	state := Fold(InitialState(), reviewEvent(t, EventTypeStarted, StartedPayload{ReviewID: "r1"}, fixedNow()))

	decision := decide(t, state, CommandTypeStart, StartedPayload{ReviewID: "r2"})
	if len(decision.Rejections) != 1 || decision.Rejections[0].Code != rejectionCodeReviewAlreadyOpen {
		t.Fatalf("expected already-open rejection, got %v", decision.Rejections)
	}
}

func TestDecidePhaseGuards(t *testing.T) {
	t0 := fixedNow()
	state := Fold(InitialState(), reviewEvent(t, EventTypeStarted, StartedPayload{ReviewID: "r1"}, t0))

	// Close before reaching intentions is rejected.
	decision := decide(t, state, CommandTypeClose, ClosedPayload{ReviewID: "r1"})
	if len(decision.Rejections) != 1 || decision.Rejections[0].Code != rejectionCodeReviewPhaseInvalid {
		t.Fatalf("expected phase rejection, got %v", decision.Rejections)
	}

	state = Fold(state, reviewEvent(t, EventTypeAdvanced, AdvancedPayload{ReviewID: "r1"}, t0))
	state = Fold(state, reviewEvent(t, EventTypeAdvanced, AdvancedPayload{ReviewID: "r1"}, t0))

	// Advance past intentions is rejected; close succeeds.
	decision = decide(t, state, CommandTypeAdvance, AdvancedPayload{ReviewID: "r1"})
	if len(decision.Rejections) != 1 || decision.Rejections[0].Code != rejectionCodeReviewPhaseInvalid {
		t.Fatalf("expected phase rejection, got %v", decision.Rejections)
	}
	decision = decide(t, state, CommandTypeClose, ClosedPayload{ReviewID: "r1"})
	if len(decision.Events) != 1 {
		t.Fatalf("expected close accepted, got %v", decision.Rejections)
	}
}

func TestDecideSkipFromAnyOpenPhase(t *testing.T) {
	t0 := fixedNow()
	state := Fold(InitialState(), reviewEvent(t, EventTypeStarted, StartedPayload{ReviewID: "r1"}, t0))
	state = Fold(state, reviewEvent(t, EventTypeAdvanced, AdvancedPayload{ReviewID: "r1"}, t0))

	decision := decide(t, state, CommandTypeSkip, SkippedPayload{ReviewID: "r1"})
	if len(decision.Events) != 1 {
		t.Fatalf("expected skip accepted from reflect, got %v", decision.Rejections)
	}
}

func TestDecideNoOpenReview(t *testing.T) {
	decision := decide(t, InitialState(), CommandTypeAdvance, AdvancedPayload{ReviewID: "r1"})
	if len(decision.Rejections) != 1 || decision.Rejections[0].Code != rejectionCodeReviewNotOpen {
		t.Fatalf("expected not-open rejection, got %v", decision.Rejections)
	}
}
