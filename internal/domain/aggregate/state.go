package aggregate

import (
	"github.com/Fordjour12/seila/internal/domain/checkin"
	"github.com/Fordjour12/seila/internal/domain/finance"
	"github.com/Fordjour12/seila/internal/domain/habit"
	"github.com/Fordjour12/seila/internal/domain/pattern"
	"github.com/Fordjour12/seila/internal/domain/review"
	"github.com/Fordjour12/seila/internal/domain/settings"
	"github.com/Fordjour12/seila/internal/domain/task"
)

// State is the composite of every domain's folded state for one user.
type State struct {
	Habits   habit.State
	Finance  finance.State
	Patterns pattern.State
	Tasks    task.State
	Checkins checkin.State
	Reviews  review.State
	Settings settings.State
}

// InitialState returns the composite initial state across all domains.
func InitialState() State {
	return State{
		Habits:   habit.InitialState(),
		Finance:  finance.InitialState(),
		Patterns: pattern.InitialState(),
		Tasks:    task.InitialState(),
		Checkins: checkin.InitialState(),
		Reviews:  review.InitialState(),
		Settings: settings.InitialState(),
	}
}
