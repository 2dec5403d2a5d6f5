// Package habit models habit definitions and day-scoped habit logs.
//
// The fold keeps the latest log event per habit; the "today" view is derived
// from an explicit reference time, never from the wall clock, so replaying the
// same events always yields the same state. Absence of a log entry for a day
// is neutral: no event type encodes "missed".
package habit

import "time"

// Cadence kinds.
const (
	CadenceDaily    = "daily"
	CadenceWeekdays = "weekdays"
	CadenceCustom   = "custom"
)

// Cadence describes when a habit is due.
type Cadence struct {
	Kind string `json:"kind"`
	// CustomDays holds weekdays 0 (Sunday) through 6 (Saturday) for the
	// custom kind.
	CustomDays []int `json:"custom_days,omitempty"`
}

// Habit is an active habit definition.
type Habit struct {
	HabitID     string
	Name        string
	Cadence     Cadence
	Anchor      string
	Difficulty  string
	TargetValue int
	TargetUnit  string
	Timezone    string
}

// Log statuses. There is deliberately no "missed" status.
const (
	LogStatusCompleted = "completed"
	LogStatusSkipped   = "skipped"
	LogStatusSnoozed   = "snoozed"
)

// LogEntry is the latest log event recorded for a habit.
type LogEntry struct {
	HabitID      string
	Status       string
	OccurredAt   time.Time
	SnoozedUntil time.Time
	Value        int
}

// State holds the habit projection for one user.
type State struct {
	// Active maps habit id to its current definition. Archived habits are
	// removed.
	Active map[string]Habit
	// Log maps habit id to the latest log event, regardless of day. Callers
	// scope it to a day via TodayLog.
	Log map[string]LogEntry
}

// InitialState returns the empty habit state.
func InitialState() State {
	return State{}
}

// TodayLog returns the log entries that fall on the local day containing now.
//
// The day boundary is derived from each habit's stored timezone when present,
// falling back to UTC. Entries from earlier days are excluded, which is how
// day rollover implicitly clears the log.
func TodayLog(state State, now time.Time) map[string]LogEntry {
	if len(state.Log) == 0 {
		return nil
	}
	today := make(map[string]LogEntry)
	for habitID, entry := range state.Log {
		loc := time.UTC
		if habit, ok := state.Active[habitID]; ok && habit.Timezone != "" {
			if parsed, err := time.LoadLocation(habit.Timezone); err == nil {
				loc = parsed
			}
		}
		local := now.In(loc)
		dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		if !entry.OccurredAt.Before(dayStart) && entry.OccurredAt.Before(dayStart.Add(24*time.Hour)) {
			today[habitID] = entry
		}
	}
	if len(today) == 0 {
		return nil
	}
	return today
}

// DueOn reports whether the habit's cadence includes the local day of now.
func DueOn(habit Habit, now time.Time) bool {
	loc := time.UTC
	if habit.Timezone != "" {
		if parsed, err := time.LoadLocation(habit.Timezone); err == nil {
			loc = parsed
		}
	}
	weekday := now.In(loc).Weekday()
	switch habit.Cadence.Kind {
	case CadenceDaily:
		return true
	case CadenceWeekdays:
		return weekday != time.Saturday && weekday != time.Sunday
	case CadenceCustom:
		for _, day := range habit.Cadence.CustomDays {
			if time.Weekday(day) == weekday {
				return true
			}
		}
		return false
	default:
		return false
	}
}
