package habit

import "time"

// CreatePayload captures the payload for habit.created events.
type CreatePayload struct {
	HabitID     string  `json:"habit_id"`
	Name        string  `json:"name"`
	Cadence     Cadence `json:"cadence"`
	Anchor      string  `json:"anchor,omitempty"`
	Difficulty  string  `json:"difficulty,omitempty"`
	TargetValue int     `json:"target_value,omitempty"`
	TargetUnit  string  `json:"target_unit,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
}

// UpdatePayload captures the payload for habit.updated events. Nil fields are
// left unchanged.
type UpdatePayload struct {
	HabitID     string   `json:"habit_id"`
	Name        *string  `json:"name,omitempty"`
	Cadence     *Cadence `json:"cadence,omitempty"`
	Anchor      *string  `json:"anchor,omitempty"`
	Difficulty  *string  `json:"difficulty,omitempty"`
	TargetValue *int     `json:"target_value,omitempty"`
	TargetUnit  *string  `json:"target_unit,omitempty"`
	Timezone    *string  `json:"timezone,omitempty"`
}

// ArchivePayload captures the payload for habit.archived events.
type ArchivePayload struct {
	HabitID string `json:"habit_id"`
	Reason  string `json:"reason,omitempty"`
}

// CompletePayload captures the payload for habit.completed events.
type CompletePayload struct {
	HabitID string `json:"habit_id"`
	Value   int    `json:"value,omitempty"`
}

// SkipPayload captures the payload for habit.skipped events.
type SkipPayload struct {
	HabitID string `json:"habit_id"`
	Reason  string `json:"reason,omitempty"`
}

// SnoozePayload captures the payload for habit.snoozed events.
type SnoozePayload struct {
	HabitID      string    `json:"habit_id"`
	SnoozedUntil time.Time `json:"snoozed_until"`
}
