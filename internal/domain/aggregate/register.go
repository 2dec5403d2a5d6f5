package aggregate

import (
	"fmt"

	"github.com/Fordjour12/seila/internal/domain/checkin"
	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
	"github.com/Fordjour12/seila/internal/domain/finance"
	"github.com/Fordjour12/seila/internal/domain/habit"
	"github.com/Fordjour12/seila/internal/domain/pattern"
	"github.com/Fordjour12/seila/internal/domain/review"
	"github.com/Fordjour12/seila/internal/domain/settings"
	"github.com/Fordjour12/seila/internal/domain/task"
)

// NewRegistries builds command and event registries with every domain
// registered.
func NewRegistries() (*command.Registry, *event.Registry, error) {
	commands := command.NewRegistry()
	events := event.NewRegistry()

	type registrar struct {
		name     string
		commands func(*command.Registry) error
		events   func(*event.Registry) error
	}
	registrars := []registrar{
		{"habit", habit.RegisterCommands, habit.RegisterEvents},
		{"finance", finance.RegisterCommands, finance.RegisterEvents},
		{"pattern", pattern.RegisterCommands, pattern.RegisterEvents},
		{"task", task.RegisterCommands, task.RegisterEvents},
		{"checkin", checkin.RegisterCommands, checkin.RegisterEvents},
		{"review", review.RegisterCommands, review.RegisterEvents},
		{"settings", settings.RegisterCommands, settings.RegisterEvents},
	}
	for _, r := range registrars {
		if err := r.commands(commands); err != nil {
			return nil, nil, fmt.Errorf("register %s commands: %w", r.name, err)
		}
		if err := r.events(events); err != nil {
			return nil, nil, fmt.Errorf("register %s events: %w", r.name, err)
		}
	}
	return commands, events, nil
}
