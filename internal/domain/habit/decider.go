package habit

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

const (
	CommandTypeCreate   command.Type = "habit.create"
	CommandTypeUpdate   command.Type = "habit.update"
	CommandTypeArchive  command.Type = "habit.archive"
	CommandTypeComplete command.Type = "habit.complete"
	CommandTypeSkip     command.Type = "habit.skip"
	CommandTypeSnooze   command.Type = "habit.snooze"

	EventTypeCreated   event.Type = "habit.created"
	EventTypeUpdated   event.Type = "habit.updated"
	EventTypeArchived  event.Type = "habit.archived"
	EventTypeCompleted event.Type = "habit.completed"
	EventTypeSkipped   event.Type = "habit.skipped"
	EventTypeSnoozed   event.Type = "habit.snoozed"

	rejectionCodeHabitIDRequired      = "HABIT_ID_REQUIRED"
	rejectionCodeHabitNameEmpty       = "HABIT_NAME_EMPTY"
	rejectionCodeHabitCadenceInvalid  = "HABIT_CADENCE_INVALID"
	rejectionCodeHabitTimezoneInvalid = "HABIT_TIMEZONE_INVALID"
	rejectionCodeHabitAlreadyExists   = "HABIT_ALREADY_EXISTS"
	rejectionCodeHabitNotFound        = "HABIT_NOT_FOUND"
	rejectionCodeHabitSnoozeRequired  = "HABIT_SNOOZE_UNTIL_REQUIRED"

	entityType = "habit"
)

// Decide returns the decision for a habit command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}

	switch cmd.Type {
	case CommandTypeCreate:
		var payload CreatePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.HabitID = strings.TrimSpace(payload.HabitID)
		if payload.HabitID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeHabitIDRequired,
				Message: "habit id is required",
			})
		}
		if _, exists := state.Active[payload.HabitID]; exists {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeHabitAlreadyExists,
				Message: "habit already exists",
			})
		}
		payload.Name = strings.TrimSpace(payload.Name)
		if payload.Name == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeHabitNameEmpty,
				Message: "name is required",
			})
		}
		cadence, ok := normalizeCadence(payload.Cadence)
		if !ok {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeHabitCadenceInvalid,
				Message: "cadence is invalid",
			})
		}
		payload.Cadence = cadence
		payload.Timezone = strings.TrimSpace(payload.Timezone)
		if payload.Timezone != "" {
			if _, err := time.LoadLocation(payload.Timezone); err != nil {
				return command.Reject(command.Rejection{
					Code:    rejectionCodeHabitTimezoneInvalid,
					Message: "timezone is invalid",
				})
			}
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeCreated, entityType, payload.HabitID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeUpdate:
		var payload UpdatePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.HabitID = strings.TrimSpace(payload.HabitID)
		if payload.HabitID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeHabitIDRequired,
				Message: "habit id is required",
			})
		}
		if _, ok := state.Active[payload.HabitID]; !ok {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeHabitNotFound,
				Message: "habit not found",
			})
		}
		if payload.Name != nil {
			trimmed := strings.TrimSpace(*payload.Name)
			if trimmed == "" {
				return command.Reject(command.Rejection{
					Code:    rejectionCodeHabitNameEmpty,
					Message: "name is required",
				})
			}
			payload.Name = &trimmed
		}
		if payload.Cadence != nil {
			cadence, ok := normalizeCadence(*payload.Cadence)
			if !ok {
				return command.Reject(command.Rejection{
					Code:    rejectionCodeHabitCadenceInvalid,
					Message: "cadence is invalid",
				})
			}
			payload.Cadence = &cadence
		}
		if payload.Timezone != nil {
			trimmed := strings.TrimSpace(*payload.Timezone)
			if trimmed != "" {
				if _, err := time.LoadLocation(trimmed); err != nil {
					return command.Reject(command.Rejection{
						Code:    rejectionCodeHabitTimezoneInvalid,
						Message: "timezone is invalid",
					})
				}
			}
			payload.Timezone = &trimmed
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeUpdated, entityType, payload.HabitID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeArchive:
		var payload ArchivePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.HabitID = strings.TrimSpace(payload.HabitID)
		if payload.HabitID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeHabitIDRequired,
				Message: "habit id is required",
			})
		}
		if _, ok := state.Active[payload.HabitID]; !ok {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeHabitNotFound,
				Message: "habit not found",
			})
		}
		payload.Reason = strings.TrimSpace(payload.Reason)

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeArchived, entityType, payload.HabitID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeComplete:
		var payload CompletePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.HabitID = strings.TrimSpace(payload.HabitID)
		if rejection, ok := requireActiveHabit(state, payload.HabitID); !ok {
			return command.Reject(rejection)
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeCompleted, entityType, payload.HabitID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeSkip:
		var payload SkipPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.HabitID = strings.TrimSpace(payload.HabitID)
		if rejection, ok := requireActiveHabit(state, payload.HabitID); !ok {
			return command.Reject(rejection)
		}
		payload.Reason = strings.TrimSpace(payload.Reason)

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeSkipped, entityType, payload.HabitID, payloadJSON, now().UTC())
		return command.Accept(evt)

	case CommandTypeSnooze:
		var payload SnoozePayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.HabitID = strings.TrimSpace(payload.HabitID)
		if rejection, ok := requireActiveHabit(state, payload.HabitID); !ok {
			return command.Reject(rejection)
		}
		if payload.SnoozedUntil.IsZero() {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeHabitSnoozeRequired,
				Message: "snoozed_until is required",
			})
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeSnoozed, entityType, payload.HabitID, payloadJSON, now().UTC())
		return command.Accept(evt)
	}

	return command.Decision{}
}

func requireActiveHabit(state State, habitID string) (command.Rejection, bool) {
	if habitID == "" {
		return command.Rejection{
			Code:    rejectionCodeHabitIDRequired,
			Message: "habit id is required",
		}, false
	}
	if _, ok := state.Active[habitID]; !ok {
		return command.Rejection{
			Code:    rejectionCodeHabitNotFound,
			Message: "habit not found",
		}, false
	}
	return command.Rejection{}, true
}

// normalizeCadence returns a canonical cadence.
func normalizeCadence(cadence Cadence) (Cadence, bool) {
	kind := strings.ToLower(strings.TrimSpace(cadence.Kind))
	switch kind {
	case CadenceDaily, CadenceWeekdays:
		return Cadence{Kind: kind}, true
	case CadenceCustom:
		if len(cadence.CustomDays) == 0 {
			return Cadence{}, false
		}
		seen := make(map[int]bool)
		days := make([]int, 0, len(cadence.CustomDays))
		for _, day := range cadence.CustomDays {
			if day < 0 || day > 6 {
				return Cadence{}, false
			}
			if seen[day] {
				continue
			}
			seen[day] = true
			days = append(days, day)
		}
		sort.Ints(days)
		return Cadence{Kind: kind, CustomDays: days}, true
	default:
		return Cadence{}, false
	}
}
