// Package suggestion evaluates a fixed policy battery over a read-only
// snapshot of domain state and reconciles the outcome against previously
// surfaced suggestions. It is a read path: nothing here emits events.
package suggestion

import "time"

// Suggestion is a surfaced policy outcome the user can act on or dismiss.
// At most one suggestion is active per policy id.
type Suggestion struct {
	ID        string
	UserID    string
	PolicyID  string
	Headline  string
	Subtext   string
	Action    string
	Priority  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Candidate is the raw outcome of one policy rule before reconciliation.
type Candidate struct {
	PolicyID string
	Headline string
	Subtext  string
	Action   string
	Priority int
}

// changedFrom reports whether surfacing the candidate would alter the stored
// suggestion.
func (c Candidate) changedFrom(s Suggestion) bool {
	return c.Headline != s.Headline ||
		c.Subtext != s.Subtext ||
		c.Action != s.Action ||
		c.Priority != s.Priority
}
