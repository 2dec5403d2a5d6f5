package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Fordjour12/seila/internal/domain/event"
	"github.com/Fordjour12/seila/internal/storage"
	"github.com/Fordjour12/seila/internal/suggestion"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "seila.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testEvent(userID, key string, eventType event.Type) event.Event {
	return event.Event{
		UserID:         userID,
		Type:           eventType,
		OccurredAt:     time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		IdempotencyKey: key,
		EntityType:     "task",
		EntityID:       "t1",
		PayloadJSON:    []byte(`{"task_id":"t1","title":"Write"}`),
	}
}

func TestAppendAssignsContiguousSeqs(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.AppendEvents(ctx, []event.Event{
		testEvent("user-1", "key-1", "task.created"),
		testEvent("user-1", "key-1", "task.status_changed"),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if first[0].Seq != 1 || first[1].Seq != 2 {
		t.Fatalf("expected seqs 1,2 got %d,%d", first[0].Seq, first[1].Seq)
	}

	second, err := store.AppendEvents(ctx, []event.Event{testEvent("user-1", "key-2", "task.blocked")})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if second[0].Seq != 3 {
		t.Fatalf("expected seq 3, got %d", second[0].Seq)
	}

	latest, err := store.LatestSeq(ctx, "user-1")
	if err != nil {
		t.Fatalf("latest seq: %v", err)
	}
	if latest != 3 {
		t.Fatalf("expected latest 3, got %d", latest)
	}
}

func TestAppendSeqsArePerUser(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.AppendEvents(ctx, []event.Event{testEvent("user-1", "key-1", "task.created")}); err != nil {
		t.Fatalf("append: %v", err)
	}
	other, err := store.AppendEvents(ctx, []event.Event{testEvent("user-2", "key-1", "task.created")})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if other[0].Seq != 1 {
		t.Fatalf("expected independent seq per user, got %d", other[0].Seq)
	}
}

func TestAppendRejectsReusedIdempotencyKey(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.AppendEvents(ctx, []event.Event{testEvent("user-1", "key-1", "task.created")}); err != nil {
		t.Fatalf("append: %v", err)
	}
	_, err := store.AppendEvents(ctx, []event.Event{testEvent("user-1", "key-1", "task.updated")})
	if !errors.Is(err, storage.ErrIdempotencyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}

	// Nothing from the conflicting batch was written.
	events, err := store.ListEvents(ctx, "user-1", 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestFindByIdempotencyKey(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	appended, err := store.AppendEvents(ctx, []event.Event{
		testEvent("user-1", "key-1", "task.created"),
		testEvent("user-1", "key-1", "task.status_changed"),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	found, err := store.FindByIdempotencyKey(ctx, "user-1", "key-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 2 || found[0].Seq != appended[0].Seq || found[0].Type != "task.created" {
		t.Fatalf("unexpected events %+v", found)
	}
	if !found[0].OccurredAt.Equal(appended[0].OccurredAt) {
		t.Fatalf("expected occurred_at round-trip, got %v", found[0].OccurredAt)
	}

	if _, err := store.FindByIdempotencyKey(ctx, "user-1", "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListEventsPages(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := string(rune('a' + i))
		if _, err := store.AppendEvents(ctx, []event.Event{testEvent("user-1", key, "task.created")}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	page, err := store.ListEvents(ctx, "user-1", 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].Seq != 3 || page[1].Seq != 4 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestSuggestionLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	sug := suggestion.Suggestion{
		ID:        "s1",
		UserID:    "user-1",
		PolicyID:  "habit-nudge",
		Headline:  "Stretch is still due today",
		Action:    "open_habits",
		Priority:  40,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.Put(ctx, sug); err != nil {
		t.Fatalf("put: %v", err)
	}

	active, err := store.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Headline != sug.Headline {
		t.Fatalf("unexpected active %+v", active)
	}

	// Replace content in place; CreatedAt survives the upsert.
	sug.Headline = "2 habits are still due today"
	sug.UpdatedAt = now.Add(time.Hour)
	if err := store.Put(ctx, sug); err != nil {
		t.Fatalf("put update: %v", err)
	}
	active, err = store.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Headline != sug.Headline || !active[0].CreatedAt.Equal(now) {
		t.Fatalf("unexpected updated suggestion %+v", active)
	}

	if err := store.Dismiss(ctx, "user-1", "s1"); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	active, err = store.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active suggestions, got %+v", active)
	}

	if err := store.Dismiss(ctx, "user-1", "s1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found on second dismiss, got %v", err)
	}
}
