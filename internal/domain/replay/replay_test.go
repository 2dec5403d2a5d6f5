package replay

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Fordjour12/seila/internal/domain/event"
	"github.com/Fordjour12/seila/internal/domain/task"
)

type stubStore struct {
	events []event.Event
	calls  int
}

func (s *stubStore) ListEvents(_ context.Context, _ string, afterSeq uint64, limit int) ([]event.Event, error) {
	s.calls++
	var out []event.Event
	for _, evt := range s.events {
		if evt.Seq > afterSeq {
			out = append(out, evt)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type failingStore struct{}

func (failingStore) ListEvents(context.Context, string, uint64, int) ([]event.Event, error) {
	return nil, errors.New("disk gone")
}

func taskCreated(t *testing.T, seq uint64, id string) event.Event {
	t.Helper()
	raw, err := json.Marshal(task.CreatePayload{TaskID: id, Title: "Task " + id})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return event.Event{
		Seq:         seq,
		Type:        task.EventTypeCreated,
		OccurredAt:  time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		PayloadJSON: raw,
	}
}

func TestLoadFoldsAllPages(t *testing.T) {
	store := &stubStore{}
	for i := uint64(1); i <= 5; i++ {
		store.events = append(store.events, taskCreated(t, i, string(rune('a'+i-1))))
	}

	state, err := Load(context.Background(), store, "user-1", 2)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state.Tasks.Tasks) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(state.Tasks.Tasks))
	}
	if store.calls != 3 {
		t.Fatalf("expected 3 pages, got %d calls", store.calls)
	}
}

func TestLoadEmptyHistory(t *testing.T) {
	state, err := Load(context.Background(), &stubStore{}, "user-1", 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state.Tasks.Tasks) != 0 {
		t.Fatal("expected initial state")
	}
}

func TestLoadRejectsOutOfOrderSeq(t *testing.T) {
	store := &stubStore{events: []event.Event{taskCreated(t, 2, "a"), taskCreated(t, 1, "b")}}
	// Force both events into one page so the second arrives with a lower seq.
	store.events[1].Seq = 2

	if _, err := Load(context.Background(), store, "user-1", 10); err == nil {
		t.Fatal("expected order violation error")
	}
}

func TestLoadWrapsStoreError(t *testing.T) {
	if _, err := Load(context.Background(), failingStore{}, "user-1", 0); err == nil {
		t.Fatal("expected store error surfaced")
	}
}
