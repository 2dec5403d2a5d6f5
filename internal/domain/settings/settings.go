package settings

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

const (
	CommandTypeSetQuietDay command.Type = "settings.set_quiet_day"

	EventTypeQuietDaySet event.Type = "settings.quiet_day_set"

	rejectionCodeQuietDayDateInvalid = "QUIET_DAY_DATE_INVALID"

	entityType = "settings"

	dateLayout = "2006-01-02"
)

// QuietDayPayload is the payload for settings.set_quiet_day and
// settings.quiet_day_set. Date is a calendar day in 2006-01-02 form.
type QuietDayPayload struct {
	Date    string `json:"date"`
	Enabled bool   `json:"enabled"`
}

// State holds per-user settings derived from the event log.
type State struct {
	QuietDays map[string]bool
}

// InitialState returns the empty settings state.
func InitialState() State {
	return State{QuietDays: make(map[string]bool)}
}

// IsQuietDay reports whether the UTC calendar day of now is flagged quiet.
func IsQuietDay(state State, now time.Time) bool {
	return state.QuietDays[now.UTC().Format(dateLayout)]
}

// FoldHandledTypes returns the event types handled by the settings fold.
func FoldHandledTypes() []event.Type {
	return []event.Type{EventTypeQuietDaySet}
}

// Fold applies an event to settings state.
func Fold(state State, evt event.Event) State {
	if evt.Type != EventTypeQuietDaySet {
		return state
	}
	var payload QuietDayPayload
	_ = json.Unmarshal(evt.PayloadJSON, &payload)
	if payload.Date == "" {
		return state
	}
	if state.QuietDays == nil {
		state.QuietDays = make(map[string]bool)
	}
	if payload.Enabled {
		state.QuietDays[payload.Date] = true
	} else {
		delete(state.QuietDays, payload.Date)
	}
	return state
}

// Decide returns the decision for a settings command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	if cmd.Type != CommandTypeSetQuietDay {
		return command.Decision{}
	}

	var payload QuietDayPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	payload.Date = strings.TrimSpace(payload.Date)
	if _, err := time.Parse(dateLayout, payload.Date); err != nil {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeQuietDayDateInvalid,
			Message: "date must be a calendar day like 2026-03-02",
		})
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, EventTypeQuietDaySet, entityType, payload.Date, payloadJSON, now().UTC())
	return command.Accept(evt)
}

// RegisterCommands registers settings commands with the shared registry.
func RegisterCommands(registry *command.Registry) error {
	if registry == nil {
		return errors.New("command registry is required")
	}
	return registry.Register(command.Definition{Type: CommandTypeSetQuietDay})
}

// RegisterEvents registers settings events with the shared registry.
func RegisterEvents(registry *event.Registry) error {
	if registry == nil {
		return errors.New("event registry is required")
	}
	return registry.Register(event.Definition{Type: EventTypeQuietDaySet, EntityType: entityType})
}
