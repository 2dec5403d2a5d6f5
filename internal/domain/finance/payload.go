package finance

import "time"

// EnvelopeCreatedPayload captures the payload for envelope.created events.
type EnvelopeCreatedPayload struct {
	EnvelopeID  string `json:"envelope_id"`
	Name        string `json:"name"`
	SoftCeiling int    `json:"soft_ceiling,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	IsPrivate   bool   `json:"is_private,omitempty"`
}

// CeilingUpdatedPayload captures the payload for envelope.ceiling_updated
// events. A zero ceiling removes the soft ceiling.
type CeilingUpdatedPayload struct {
	EnvelopeID  string `json:"envelope_id"`
	SoftCeiling int    `json:"soft_ceiling"`
}

// TransactionLoggedPayload captures the payload for transaction.logged events.
type TransactionLoggedPayload struct {
	TransactionID string    `json:"transaction_id"`
	Amount        int       `json:"amount"`
	EnvelopeID    string    `json:"envelope_id,omitempty"`
	MerchantHint  string    `json:"merchant_hint,omitempty"`
	Note          string    `json:"note,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// TransactionImportedPayload captures the payload for transaction.imported events.
type TransactionImportedPayload struct {
	TransactionID string    `json:"transaction_id"`
	Amount        int       `json:"amount"`
	MerchantHint  string    `json:"merchant_hint,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// TransactionConfirmedPayload captures the payload for transaction.confirmed events.
type TransactionConfirmedPayload struct {
	TransactionID string `json:"transaction_id"`
	EnvelopeID    string `json:"envelope_id"`
	Note          string `json:"note,omitempty"`
}

// TransactionVoidedPayload captures the payload for transaction.voided events.
type TransactionVoidedPayload struct {
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason,omitempty"`
}
