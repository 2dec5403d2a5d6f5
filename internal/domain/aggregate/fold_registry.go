package aggregate

import (
	"github.com/Fordjour12/seila/internal/domain/checkin"
	"github.com/Fordjour12/seila/internal/domain/event"
	"github.com/Fordjour12/seila/internal/domain/finance"
	"github.com/Fordjour12/seila/internal/domain/habit"
	"github.com/Fordjour12/seila/internal/domain/pattern"
	"github.com/Fordjour12/seila/internal/domain/review"
	"github.com/Fordjour12/seila/internal/domain/settings"
	"github.com/Fordjour12/seila/internal/domain/task"
)

// foldEntry describes how a set of event types maps to the fold that updates
// one slice of composite state.
type foldEntry struct {
	// types returns the event types handled by this fold entry.
	types func() []event.Type
	// fold applies a single event to a sub-state and writes the result back
	// into the composite state.
	fold func(state *State, evt event.Event)
}

// foldEntries returns the declarative fold dispatch table for all domains.
// Adding a new domain requires only adding an entry here.
func foldEntries() []foldEntry {
	return []foldEntry{
		{
			types: habit.FoldHandledTypes,
			fold: func(state *State, evt event.Event) {
				state.Habits = habit.Fold(state.Habits, evt)
			},
		},
		{
			types: finance.FoldHandledTypes,
			fold: func(state *State, evt event.Event) {
				state.Finance = finance.Fold(state.Finance, evt)
			},
		},
		{
			types: pattern.FoldHandledTypes,
			fold: func(state *State, evt event.Event) {
				state.Patterns = pattern.Fold(state.Patterns, evt)
			},
		},
		{
			types: task.FoldHandledTypes,
			fold: func(state *State, evt event.Event) {
				state.Tasks = task.Fold(state.Tasks, evt)
			},
		},
		{
			types: checkin.FoldHandledTypes,
			fold: func(state *State, evt event.Event) {
				state.Checkins = checkin.Fold(state.Checkins, evt)
			},
		},
		{
			types: review.FoldHandledTypes,
			fold: func(state *State, evt event.Event) {
				state.Reviews = review.Fold(state.Reviews, evt)
			},
		},
		{
			types: settings.FoldHandledTypes,
			fold: func(state *State, evt event.Event) {
				state.Settings = settings.Fold(state.Settings, evt)
			},
		},
	}
}

var foldIndex = buildFoldIndex()

func buildFoldIndex() map[event.Type]func(*State, event.Event) {
	index := make(map[event.Type]func(*State, event.Event))
	for _, entry := range foldEntries() {
		for _, eventType := range entry.types() {
			index[eventType] = entry.fold
		}
	}
	return index
}

// Fold applies a single event to composite state. Unknown event types are
// no-ops so newer logs replay cleanly on older code.
func Fold(state State, evt event.Event) State {
	if fold, ok := foldIndex[evt.Type]; ok {
		fold(&state, evt)
	}
	return state
}

// FoldAll folds a batch of events in order.
func FoldAll(state State, events []event.Event) State {
	for _, evt := range events {
		state = Fold(state, evt)
	}
	return state
}
