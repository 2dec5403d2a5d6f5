package checkin

import "time"

// LoggedPayload is the payload for checkin.log and checkin.logged.
type LoggedPayload struct {
	CheckinID  string    `json:"checkin_id"`
	Mood       int       `json:"mood"`
	Energy     int       `json:"energy"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at,omitzero"`
}
