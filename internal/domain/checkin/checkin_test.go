package checkin

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

func loggedEvent(t *testing.T, id string, mood, energy int, at time.Time) event.Event {
	t.Helper()
	return event.Event{
		Type:        EventTypeLogged,
		OccurredAt:  at,
		PayloadJSON: mustPayload(t, LoggedPayload{CheckinID: id, Mood: mood, Energy: energy, OccurredAt: at}),
	}
}

func TestFoldKeepsLogOrder(t *testing.T) {
	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	state := Fold(InitialState(), loggedEvent(t, "c1", 3, 4, t0))
	state = Fold(state, loggedEvent(t, "c2", 4, 2, t0.Add(24*time.Hour)))

	if len(state.Checkins) != 2 || state.Checkins[0].ID != "c1" || state.Checkins[1].ID != "c2" {
		t.Fatalf("expected ordered log c1,c2, got %v", state.Checkins)
	}
}

func TestFoldDuplicateIDNoop(t *testing.T) {
	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	state := Fold(InitialState(), loggedEvent(t, "c1", 3, 4, t0))
	state = Fold(state, loggedEvent(t, "c1", 5, 5, t0.Add(time.Hour)))

	if len(state.Checkins) != 1 || state.Checkins[0].Mood != 3 {
		t.Fatalf("expected first entry kept, got %v", state.Checkins)
	}
}

func TestSinceWindows(t *testing.T) {
	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	state := Fold(InitialState(), loggedEvent(t, "old", 2, 2, t0.AddDate(0, 0, -20)))
	state = Fold(state, loggedEvent(t, "recent", 4, 4, t0.AddDate(0, 0, -3)))

	got := Since(state, t0.AddDate(0, 0, -14))
	if len(got) != 1 || got[0].ID != "recent" {
		t.Fatalf("expected only recent checkin, got %v", got)
	}
}

func TestDecideValidation(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
	decideWith := func(state State, payload LoggedPayload) command.Decision {
		return Decide(state, command.Command{
			UserID:         "user-1",
			Type:           CommandTypeLog,
			IdempotencyKey: "key-1",
			PayloadJSON:    mustPayload(t, payload),
		}, now)
	}

	cases := []struct {
		name    string
		payload LoggedPayload
		code    string
	}{
		{"missing id", LoggedPayload{Mood: 3, Energy: 3}, rejectionCodeCheckinIDRequired},
		{"mood too low", LoggedPayload{CheckinID: "c1", Mood: 0, Energy: 3}, rejectionCodeCheckinMoodInvalid},
		{"mood too high", LoggedPayload{CheckinID: "c1", Mood: 6, Energy: 3}, rejectionCodeCheckinMoodInvalid},
		{"energy out of range", LoggedPayload{CheckinID: "c1", Mood: 3, Energy: 9}, rejectionCodeCheckinEnergyInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := decideWith(InitialState(), tc.payload)
			if len(decision.Rejections) != 1 || decision.Rejections[0].Code != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, decision.Rejections)
			}
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		state := Fold(InitialState(), loggedEvent(t, "c1", 3, 3, now()))
		decision := decideWith(state, LoggedPayload{CheckinID: "c1", Mood: 4, Energy: 4})
		if len(decision.Rejections) != 1 || decision.Rejections[0].Code != rejectionCodeCheckinAlreadyExists {
			t.Fatalf("expected duplicate rejection, got %v", decision.Rejections)
		}
	})

	t.Run("accepted defaults occurred_at", func(t *testing.T) {
		decision := decideWith(InitialState(), LoggedPayload{CheckinID: "c1", Mood: 4, Energy: 4})
		if len(decision.Events) != 1 {
			t.Fatalf("expected accepted, got %v", decision.Rejections)
		}
		var payload LoggedPayload
		if err := json.Unmarshal(decision.Events[0].PayloadJSON, &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if !payload.OccurredAt.Equal(now()) {
			t.Fatalf("expected occurred_at defaulted to now, got %v", payload.OccurredAt)
		}
	})
}
