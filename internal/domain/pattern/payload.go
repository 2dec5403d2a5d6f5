package pattern

// DetectedPayload captures the payload for pattern.detected events.
type DetectedPayload struct {
	PatternID   string  `json:"pattern_id"`
	Type        string  `json:"type"`
	Correlation string  `json:"correlation"`
	Confidence  float64 `json:"confidence"`
	Headline    string  `json:"headline"`
	Subtext     string  `json:"subtext,omitempty"`
}

// PatchPayload captures the payload for pattern.surfaced, pattern.pinned,
// pattern.dismissed, and pattern.expired events.
type PatchPayload struct {
	PatternID string `json:"pattern_id"`
	Reason    string `json:"reason,omitempty"`
}
