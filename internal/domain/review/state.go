package review

import "time"

// Phase is a step in the weekly review machine. The machine is linear:
// lookback -> reflect -> intentions -> closed.
type Phase string

const (
	PhaseLookback   Phase = "lookback"
	PhaseReflect    Phase = "reflect"
	PhaseIntentions Phase = "intentions"
	PhaseClosed     Phase = "closed"
)

// Next returns the phase that follows, or false when the phase has no
// successor.
func (p Phase) Next() (Phase, bool) {
	switch p {
	case PhaseLookback:
		return PhaseReflect, true
	case PhaseReflect:
		return PhaseIntentions, true
	}
	return "", false
}

// Review is one weekly review instance.
type Review struct {
	ID           string
	Phase        Phase
	FeltGood     string
	FeltHard     string
	CarryForward string
	Intentions   []string
	StartedAt    time.Time
	ClosedAt     time.Time
}

// State holds at most one open review plus the closed history, oldest
// first. Skipped reviews never enter history.
type State struct {
	Current *Review
	History []Review
}

// InitialState returns the empty review state.
func InitialState() State {
	return State{}
}
