package task

import (
	"errors"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

// RegisterCommands registers task commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	for _, cmdType := range []command.Type{
		CommandTypeCreate,
		CommandTypeUpdate,
		CommandTypeChangeStatus,
		CommandTypeBlock,
		CommandTypeUnblock,
		CommandTypeAddSubtask,
		CommandTypeCompleteSubtask,
	} {
		if err := registry.Register(command.Definition{Type: cmdType}); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEvents registers task events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	for _, eventType := range FoldHandledTypes() {
		if err := registry.Register(event.Definition{Type: eventType, EntityType: entityType}); err != nil {
			return err
		}
	}
	return nil
}
