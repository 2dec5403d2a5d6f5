package review

// StartedPayload is the payload for review.start and review.started.
type StartedPayload struct {
	ReviewID string `json:"review_id"`
}

// AdvancedPayload is the payload for review.advance and review.advanced.
// Answer fields are captured as the review moves through its phases; nil
// fields are left unchanged.
type AdvancedPayload struct {
	ReviewID     string    `json:"review_id"`
	FeltGood     *string   `json:"felt_good,omitempty"`
	FeltHard     *string   `json:"felt_hard,omitempty"`
	CarryForward *string   `json:"carry_forward,omitempty"`
	Intentions   *[]string `json:"intentions,omitempty"`
}

// ClosedPayload is the payload for review.close and review.closed.
type ClosedPayload struct {
	ReviewID   string    `json:"review_id"`
	Intentions *[]string `json:"intentions,omitempty"`
}

// SkippedPayload is the payload for review.skip and review.skipped.
type SkippedPayload struct {
	ReviewID string `json:"review_id"`
}
