package checkin

import (
	"errors"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

// RegisterCommands registers check-in commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	return registry.Register(command.Definition{Type: CommandTypeLog})
}

// RegisterEvents registers check-in events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	return registry.Register(event.Definition{Type: EventTypeLogged, EntityType: entityType})
}
