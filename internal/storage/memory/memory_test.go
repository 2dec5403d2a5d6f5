package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fordjour12/seila/internal/domain/event"
	"github.com/Fordjour12/seila/internal/storage"
	"github.com/Fordjour12/seila/internal/suggestion"
)

func testEvent(userID, key string) event.Event {
	return event.Event{
		UserID:         userID,
		Type:           "task.created",
		OccurredAt:     time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		IdempotencyKey: key,
		EntityType:     "task",
		EntityID:       "t1",
		PayloadJSON:    []byte(`{"task_id":"t1","title":"Write"}`),
	}
}

func TestAppendAndListSemantics(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	appended, err := store.AppendEvents(ctx, []event.Event{
		testEvent("user-1", "key-1"),
		testEvent("user-1", "key-1"),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if appended[0].Seq != 1 || appended[1].Seq != 2 {
		t.Fatalf("expected seqs 1,2 got %d,%d", appended[0].Seq, appended[1].Seq)
	}

	if _, err := store.AppendEvents(ctx, []event.Event{testEvent("user-1", "key-1")}); !errors.Is(err, storage.ErrIdempotencyConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	found, err := store.FindByIdempotencyKey(ctx, "user-1", "key-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 events, got %d", len(found))
	}

	page, err := store.ListEvents(ctx, "user-1", 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 1 || page[0].Seq != 2 {
		t.Fatalf("unexpected page %+v", page)
	}

	latest, err := store.LatestSeq(ctx, "user-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != 2 {
		t.Fatalf("expected latest 2, got %d", latest)
	}
}

func TestSuggestionSemantics(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sug := suggestion.Suggestion{ID: "s1", UserID: "user-1", PolicyID: "habit-nudge"}
	if err := store.Put(ctx, sug); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Dismiss(ctx, "user-1", "s1"); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if err := store.Dismiss(ctx, "user-1", "s1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found on repeat dismiss, got %v", err)
	}

	// Put after dismiss reactivates.
	if err := store.Put(ctx, sug); err != nil {
		t.Fatalf("put again: %v", err)
	}
	active, err := store.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected reactivated suggestion, got %d", len(active))
	}
}
