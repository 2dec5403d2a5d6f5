package finance

import (
	"encoding/json"
	"time"

	"github.com/Fordjour12/seila/internal/domain/event"
)

// FoldHandledTypes returns the event types handled by the finance fold.
func FoldHandledTypes() []event.Type {
	return []event.Type{
		EventTypeEnvelopeCreated,
		EventTypeCeilingUpdated,
		EventTypeTransactionLogged,
		EventTypeTransactionImported,
		EventTypeTransactionConfirmed,
		EventTypeTransactionVoided,
	}
}

// Fold applies an event to finance state. Unknown event types and unknown ids
// are no-ops.
//
// Transaction events are keyed by transaction id, not event order: replaying
// a second transaction.logged for the same id replaces the first, and a
// confirm racing another confirm for the same id folds to the same terminal
// state (last write wins on the patched fields).
func Fold(state State, evt event.Event) State {
	switch evt.Type {
	case EventTypeEnvelopeCreated:
		var payload EnvelopeCreatedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		if payload.EnvelopeID == "" {
			return state
		}
		if state.Envelopes == nil {
			state.Envelopes = make(map[string]Envelope)
		}
		state.Envelopes[payload.EnvelopeID] = Envelope{
			EnvelopeID:  payload.EnvelopeID,
			Name:        payload.Name,
			SoftCeiling: payload.SoftCeiling,
			Emoji:       payload.Emoji,
			IsPrivate:   payload.IsPrivate,
		}
	case EventTypeCeilingUpdated:
		var payload CeilingUpdatedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		envelope, ok := state.Envelopes[payload.EnvelopeID]
		if !ok {
			return state
		}
		envelope.SoftCeiling = payload.SoftCeiling
		state.Envelopes[payload.EnvelopeID] = envelope
	case EventTypeTransactionLogged:
		var payload TransactionLoggedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		if payload.TransactionID == "" {
			return state
		}
		if state.Transactions == nil {
			state.Transactions = make(map[string]Transaction)
		}
		// Idempotent upsert: replaces any prior entry for the id, including
		// an inbox entry from a matching import.
		state.Transactions[payload.TransactionID] = Transaction{
			TransactionID: payload.TransactionID,
			Amount:        payload.Amount,
			EnvelopeID:    payload.EnvelopeID,
			Source:        SourceManual,
			MerchantHint:  payload.MerchantHint,
			Note:          payload.Note,
			OccurredAt:    occurredAt(payload.OccurredAt, evt),
		}
	case EventTypeTransactionImported:
		var payload TransactionImportedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		if payload.TransactionID == "" {
			return state
		}
		if state.Transactions == nil {
			state.Transactions = make(map[string]Transaction)
		}
		state.Transactions[payload.TransactionID] = Transaction{
			TransactionID: payload.TransactionID,
			Amount:        payload.Amount,
			Source:        SourceImported,
			MerchantHint:  payload.MerchantHint,
			OccurredAt:    occurredAt(payload.OccurredAt, evt),
			PendingImport: true,
		}
	case EventTypeTransactionConfirmed:
		var payload TransactionConfirmedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		txn, ok := state.Transactions[payload.TransactionID]
		if !ok {
			return state
		}
		txn.PendingImport = false
		txn.EnvelopeID = payload.EnvelopeID
		if payload.Note != "" {
			txn.Note = payload.Note
		}
		state.Transactions[payload.TransactionID] = txn
	case EventTypeTransactionVoided:
		var payload TransactionVoidedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &payload)
		txn, ok := state.Transactions[payload.TransactionID]
		if !ok {
			return state
		}
		// Voiding removes from the inbox regardless of prior confirm state.
		txn.Voided = true
		txn.PendingImport = false
		state.Transactions[payload.TransactionID] = txn
	}
	return state
}

// occurredAt prefers the payload timestamp (when the money moved) over the
// event timestamp (when it was recorded).
func occurredAt(payloadAt time.Time, evt event.Event) time.Time {
	if payloadAt.IsZero() {
		return evt.OccurredAt
	}
	return payloadAt
}
