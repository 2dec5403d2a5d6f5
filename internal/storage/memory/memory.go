// Package memory provides in-memory stores with the same semantics as the
// SQLite implementation. Intended for tests and ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Fordjour12/seila/internal/domain/event"
	"github.com/Fordjour12/seila/internal/storage"
	"github.com/Fordjour12/seila/internal/suggestion"
)

// Store keeps the event log and suggestions in process memory.
type Store struct {
	mu          sync.Mutex
	events      map[string][]event.Event
	suggestions map[string]map[string]suggestion.Suggestion
	dismissed   map[string]map[string]bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		events:      make(map[string][]event.Event),
		suggestions: make(map[string]map[string]suggestion.Suggestion),
		dismissed:   make(map[string]map[string]bool),
	}
}

// AppendEvents atomically appends a decision's events.
func (s *Store) AppendEvents(_ context.Context, events []event.Event) ([]event.Event, error) {
	if len(events) == 0 {
		return nil, storage.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := events[0].UserID
	key := events[0].IdempotencyKey
	for _, evt := range s.events[userID] {
		if evt.IdempotencyKey == key {
			return nil, storage.ErrIdempotencyConflict
		}
	}

	seq := uint64(0)
	if log := s.events[userID]; len(log) > 0 {
		seq = log[len(log)-1].Seq
	}
	appended := make([]event.Event, 0, len(events))
	for _, evt := range events {
		seq++
		evt.Seq = seq
		s.events[userID] = append(s.events[userID], evt)
		appended = append(appended, evt)
	}
	return appended, nil
}

// FindByIdempotencyKey returns events previously appended under a key.
func (s *Store) FindByIdempotencyKey(_ context.Context, userID, key string) ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []event.Event
	for _, evt := range s.events[userID] {
		if evt.IdempotencyKey == key {
			found = append(found, evt)
		}
	}
	if len(found) == 0 {
		return nil, storage.ErrNotFound
	}
	return found, nil
}

// ListEvents returns up to limit events with Seq greater than afterSeq.
func (s *Store) ListEvents(_ context.Context, userID string, afterSeq uint64, limit int) ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []event.Event
	for _, evt := range s.events[userID] {
		if evt.Seq > afterSeq {
			out = append(out, evt)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// LatestSeq returns the highest assigned sequence for the user.
func (s *Store) LatestSeq(_ context.Context, userID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.events[userID]
	if len(log) == 0 {
		return 0, nil
	}
	return log[len(log)-1].Seq, nil
}

// ListActive returns the user's active suggestions ordered by policy id.
func (s *Store) ListActive(_ context.Context, userID string) ([]suggestion.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []suggestion.Suggestion
	for id, sug := range s.suggestions[userID] {
		if !s.dismissed[userID][id] {
			active = append(active, sug)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].PolicyID < active[j].PolicyID })
	return active, nil
}

// Put inserts or replaces a suggestion by id, reactivating it if dismissed.
func (s *Store) Put(_ context.Context, sug suggestion.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.suggestions[sug.UserID] == nil {
		s.suggestions[sug.UserID] = make(map[string]suggestion.Suggestion)
	}
	s.suggestions[sug.UserID][sug.ID] = sug
	delete(s.dismissed[sug.UserID], sug.ID)
	return nil
}

// Dismiss marks a suggestion inactive.
func (s *Store) Dismiss(_ context.Context, userID, suggestionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suggestions[userID][suggestionID]; !ok || s.dismissed[userID][suggestionID] {
		return storage.ErrNotFound
	}
	if s.dismissed[userID] == nil {
		s.dismissed[userID] = make(map[string]bool)
	}
	s.dismissed[userID][suggestionID] = true
	return nil
}

var _ storage.EventStore = (*Store)(nil)
var _ storage.SuggestionStore = (*Store)(nil)
