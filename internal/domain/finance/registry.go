package finance

import (
	"errors"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

// RegisterCommands registers finance commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	for _, cmdType := range []command.Type{
		CommandTypeCreateEnvelope,
		CommandTypeUpdateCeiling,
		CommandTypeLogTransaction,
		CommandTypeImportTransaction,
		CommandTypeConfirmTransaction,
		CommandTypeVoidTransaction,
	} {
		if err := registry.Register(command.Definition{Type: cmdType}); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvents registers finance events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	for _, eventType := range []event.Type{EventTypeEnvelopeCreated, EventTypeCeilingUpdated} {
		if err := registry.Register(event.Definition{Type: eventType, EntityType: envelopeEntityType}); err != nil {
			return err
		}
	}
	for _, eventType := range []event.Type{
		EventTypeTransactionLogged,
		EventTypeTransactionImported,
		EventTypeTransactionConfirmed,
		EventTypeTransactionVoided,
	} {
		if err := registry.Register(event.Definition{Type: eventType, EntityType: transactionEntityType}); err != nil {
			return err
		}
	}
	return nil
}
