package finance

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

const (
	CommandTypeCreateEnvelope     command.Type = "envelope.create"
	CommandTypeUpdateCeiling      command.Type = "envelope.update_ceiling"
	CommandTypeLogTransaction     command.Type = "transaction.log"
	CommandTypeImportTransaction  command.Type = "transaction.import"
	CommandTypeConfirmTransaction command.Type = "transaction.confirm"
	CommandTypeVoidTransaction    command.Type = "transaction.void"

	EventTypeEnvelopeCreated      event.Type = "envelope.created"
	EventTypeCeilingUpdated       event.Type = "envelope.ceiling_updated"
	EventTypeTransactionLogged    event.Type = "transaction.logged"
	EventTypeTransactionImported  event.Type = "transaction.imported"
	EventTypeTransactionConfirmed event.Type = "transaction.confirmed"
	EventTypeTransactionVoided    event.Type = "transaction.voided"

	rejectionCodeEnvelopeIDRequired    = "ENVELOPE_ID_REQUIRED"
	rejectionCodeEnvelopeNameEmpty     = "ENVELOPE_NAME_EMPTY"
	rejectionCodeEnvelopeAlreadyExists = "ENVELOPE_ALREADY_EXISTS"
	rejectionCodeEnvelopeNotFound      = "ENVELOPE_NOT_FOUND"
	rejectionCodeCeilingNegative       = "ENVELOPE_CEILING_NEGATIVE"
	rejectionCodeTransactionIDRequired = "TRANSACTION_ID_REQUIRED"
	rejectionCodeAmountNotPositive     = "TRANSACTION_AMOUNT_NOT_POSITIVE"
	rejectionCodeTransactionNotFound   = "TRANSACTION_NOT_FOUND"
	rejectionCodeTransactionVoided     = "TRANSACTION_ALREADY_VOIDED"

	envelopeEntityType    = "envelope"
	transactionEntityType = "transaction"
)

// Decide returns the decision for a finance command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}

	switch cmd.Type {
	case CommandTypeCreateEnvelope:
		var payload EnvelopeCreatedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.EnvelopeID = strings.TrimSpace(payload.EnvelopeID)
		if payload.EnvelopeID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeEnvelopeIDRequired,
				Message: "envelope id is required",
			})
		}
		if _, exists := state.Envelopes[payload.EnvelopeID]; exists {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeEnvelopeAlreadyExists,
				Message: "envelope already exists",
			})
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if payload.Name == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeEnvelopeNameEmpty,
				Message: "name is required",
			})
		}
		if payload.SoftCeiling < 0 {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeCeilingNegative,
				Message: "soft ceiling must not be negative",
			})
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeEnvelopeCreated, envelopeEntityType, payload.EnvelopeID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeUpdateCeiling:
		var payload CeilingUpdatedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.EnvelopeID = strings.TrimSpace(payload.EnvelopeID)
		if payload.EnvelopeID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeEnvelopeIDRequired,
				Message: "envelope id is required",
			})
		}
		if _, ok := state.Envelopes[payload.EnvelopeID]; !ok {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeEnvelopeNotFound,
				Message: "envelope not found",
			})
		}
		if payload.SoftCeiling < 0 {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeCeilingNegative,
				Message: "soft ceiling must not be negative",
			})
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeCeilingUpdated, envelopeEntityType, payload.EnvelopeID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeLogTransaction:
		var payload TransactionLoggedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.TransactionID = strings.TrimSpace(payload.TransactionID)
		if payload.TransactionID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeTransactionIDRequired,
				Message: "transaction id is required",
			})
		}
		if payload.Amount <= 0 {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeAmountNotPositive,
				Message: "amount must be a positive integer",
			})
		}
		payload.EnvelopeID = strings.TrimSpace(payload.EnvelopeID)
		if payload.EnvelopeID != "" {
			if _, ok := state.Envelopes[payload.EnvelopeID]; !ok {
				return command.Reject(command.Rejection{
					Code:    rejectionCodeEnvelopeNotFound,
					Message: "envelope not found",
				})
			}
		}
		if payload.OccurredAt.IsZero() {
			payload.OccurredAt = now().UTC()
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeTransactionLogged, transactionEntityType, payload.TransactionID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeImportTransaction:
		var payload TransactionImportedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.TransactionID = strings.TrimSpace(payload.TransactionID)
		if payload.TransactionID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeTransactionIDRequired,
				Message: "transaction id is required",
			})
		}
		if payload.Amount <= 0 {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeAmountNotPositive,
				Message: "amount must be a positive integer",
			})
		}
		if payload.OccurredAt.IsZero() {
			payload.OccurredAt = now().UTC()
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeTransactionImported, transactionEntityType, payload.TransactionID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeConfirmTransaction:
		var payload TransactionConfirmedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.TransactionID = strings.TrimSpace(payload.TransactionID)
		if payload.TransactionID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeTransactionIDRequired,
				Message: "transaction id is required",
			})
		}
		txn, ok := state.Transactions[payload.TransactionID]
		if !ok {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeTransactionNotFound,
				Message: "transaction not found",
			})
		}
		if txn.Voided {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeTransactionVoided,
				Message: "transaction is voided",
			})
		}
		payload.EnvelopeID = strings.TrimSpace(payload.EnvelopeID)
		if payload.EnvelopeID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeEnvelopeIDRequired,
				Message: "envelope id is required",
			})
		}
		if _, ok := state.Envelopes[payload.EnvelopeID]; !ok {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeEnvelopeNotFound,
				Message: "envelope not found",
			})
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeTransactionConfirmed, transactionEntityType, payload.TransactionID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeVoidTransaction:
		var payload TransactionVoidedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.TransactionID = strings.TrimSpace(payload.TransactionID)
		if payload.TransactionID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeTransactionIDRequired,
				Message: "transaction id is required",
			})
		}
		if _, ok := state.Transactions[payload.TransactionID]; !ok {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeTransactionNotFound,
				Message: "transaction not found",
			})
		}
		payload.Reason = strings.TrimSpace(payload.Reason)

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeTransactionVoided, transactionEntityType, payload.TransactionID, payloadJSON, now().UTC())
		return command.Accept(evt)
	}

	return command.Decision{}
}
