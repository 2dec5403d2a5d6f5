package checkin

import "time"

// Checkin is a single mood/energy log entry.
type Checkin struct {
	ID         string
	Mood       int
	Energy     int
	Note       string
	OccurredAt time.Time
}

// State keeps the ordered check-in log, oldest first.
type State struct {
	Checkins []Checkin
}

// InitialState returns the empty check-in state.
func InitialState() State {
	return State{}
}

// Since returns check-ins at or after the given instant, preserving log
// order.
func Since(state State, since time.Time) []Checkin {
	var out []Checkin
	for _, c := range state.Checkins {
		if !c.OccurredAt.Before(since) {
			out = append(out, c)
		}
	}
	return out
}
