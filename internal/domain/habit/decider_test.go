package habit

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

func TestDecideCreateEmitsCreated(t *testing.T) {
	decision := decide(t, InitialState(), CommandTypeCreate, CreatePayload{
		HabitID: "h1",
		Name:    "Stretch",
		Cadence: Cadence{Kind: "Daily"},
	})
	if len(decision.Rejections) != 0 {
		t.Fatalf("unexpected rejections: %v", decision.Rejections)
	}
	if len(decision.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(decision.Events))
	}
	evt := decision.Events[0]
	if evt.Type != EventTypeCreated {
		t.Fatalf("expected %s, got %s", EventTypeCreated, evt.Type)
	}
	if evt.EntityID != "h1" {
		t.Fatalf("expected entity id h1, got %q", evt.EntityID)
	}
	if evt.IdempotencyKey != "key-1" {
		t.Fatalf("expected idempotency key forwarded, got %q", evt.IdempotencyKey)
	}

	state := Fold(InitialState(), evt)
	if state.Active["h1"].Cadence.Kind != CadenceDaily {
		t.Fatalf("expected normalized cadence, got %q", state.Active["h1"].Cadence.Kind)
	}
}

func TestDecideCreateRejections(t *testing.T) {
	cases := []struct {
		name    string
		payload CreatePayload
		code    string
	}{
		{"missing id", CreatePayload{Name: "x", Cadence: Cadence{Kind: CadenceDaily}}, rejectionCodeHabitIDRequired},
		{"empty name", CreatePayload{HabitID: "h1", Name: "  ", Cadence: Cadence{Kind: CadenceDaily}}, rejectionCodeHabitNameEmpty},
		{"bad cadence", CreatePayload{HabitID: "h1", Name: "x", Cadence: Cadence{Kind: "hourly"}}, rejectionCodeHabitCadenceInvalid},
		{"custom without days", CreatePayload{HabitID: "h1", Name: "x", Cadence: Cadence{Kind: CadenceCustom}}, rejectionCodeHabitCadenceInvalid},
		{"day out of range", CreatePayload{HabitID: "h1", Name: "x", Cadence: Cadence{Kind: CadenceCustom, CustomDays: []int{7}}}, rejectionCodeHabitCadenceInvalid},
		{"bad timezone", CreatePayload{HabitID: "h1", Name: "x", Cadence: Cadence{Kind: CadenceDaily}, Timezone: "Mars/Olympus"}, rejectionCodeHabitTimezoneInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := decide(t, InitialState(), CommandTypeCreate, tc.payload)
			if len(decision.Events) != 0 {
				t.Fatalf("expected no events, got %d", len(decision.Events))
			}
			if len(decision.Rejections) != 1 || decision.Rejections[0].Code != tc.code {
				t.Fatalf("expected rejection %s, got %v", tc.code, decision.Rejections)
			}
		})
	}
}

func TestDecideCreateDuplicateRejected(t *testing.T) {
	state := Fold(InitialState(), createdEvent(t, "h1", "Stretch", fixedNow()))
	decision := decide(t, state, CommandTypeCreate, CreatePayload{
		HabitID: "h1",
		Name:    "Stretch",
		Cadence: Cadence{Kind: CadenceDaily},
	})
	if len(decision.Rejections) != 1 || decision.Rejections[0].Code != rejectionCodeHabitAlreadyExists {
		t.Fatalf("expected duplicate rejection, got %v", decision.Rejections)
	}
}

func TestDecideLogCommandsRequireKnownHabit(t *testing.T) {
	for _, cmdType := range []command.Type{CommandTypeComplete, CommandTypeSkip, CommandTypeArchive} {
		decision := decide(t, InitialState(), cmdType, map[string]string{"habit_id": "ghost"})
		if len(decision.Events) != 0 {
			t.Fatalf("%s: expected no events", cmdType)
		}
		if len(decision.Rejections) != 1 || decision.Rejections[0].Code != rejectionCodeHabitNotFound {
			t.Fatalf("%s: expected not-found rejection, got %v", cmdType, decision.Rejections)
		}
	}
}

func TestDecideSnoozeRequiresUntil(t *testing.T) {
	state := Fold(InitialState(), createdEvent(t, "h1", "Stretch", fixedNow()))
	decision := decide(t, state, CommandTypeSnooze, SnoozePayload{HabitID: "h1"})
	if len(decision.Rejections) != 1 || decision.Rejections[0].Code != rejectionCodeHabitSnoozeRequired {
		t.Fatalf("expected snooze rejection, got %v", decision.Rejections)
	}

	decision = decide(t, state, CommandTypeSnooze, SnoozePayload{
		HabitID:      "h1",
		SnoozedUntil: fixedNow().Add(4 * time.Hour),
	})
	if len(decision.Events) != 1 || decision.Events[0].Type != EventTypeSnoozed {
		t.Fatalf("expected snoozed event, got %v", decision)
	}
}

func TestDecideUnknownCommandTypeEmpty(t *testing.T) {
	decision := decide(t, InitialState(), "habit.levitate", map[string]string{})
	if len(decision.Events) != 0 || len(decision.Rejections) != 0 {
		t.Fatalf("expected empty decision, got %v", decision)
	}
}
