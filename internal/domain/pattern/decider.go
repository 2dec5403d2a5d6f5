package pattern

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

const (
	CommandTypeDetect  command.Type = "pattern.detect"
	CommandTypeSurface command.Type = "pattern.surface"
	CommandTypePin     command.Type = "pattern.pin"
	CommandTypeDismiss command.Type = "pattern.dismiss"
	CommandTypeExpire  command.Type = "pattern.expire"

	EventTypeDetected  event.Type = "pattern.detected"
	EventTypeSurfaced  event.Type = "pattern.surfaced"
	EventTypePinned    event.Type = "pattern.pinned"
	EventTypeDismissed event.Type = "pattern.dismissed"
	EventTypeExpired   event.Type = "pattern.expired"

	rejectionCodePatternIDRequired        = "PATTERN_ID_REQUIRED"
	rejectionCodePatternHeadlineEmpty     = "PATTERN_HEADLINE_EMPTY"
	rejectionCodePatternConfidenceInvalid = "PATTERN_CONFIDENCE_INVALID"
	rejectionCodePatternAlreadyExists     = "PATTERN_ALREADY_EXISTS"
	rejectionCodePatternNotFound          = "PATTERN_NOT_FOUND"
	rejectionCodePatternPinned            = "PATTERN_PINNED"

	entityType = "pattern"
)

// Decide returns the decision for a pattern command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}

	if cmd.Type == CommandTypeDetect {
		var payload DetectedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.PatternID = strings.TrimSpace(payload.PatternID)
		if payload.PatternID == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodePatternIDRequired,
				Message: "pattern id is required",
			})
		}
		if _, exists := state.Patterns[payload.PatternID]; exists {
			return command.Reject(command.Rejection{
				Code:    rejectionCodePatternAlreadyExists,
				Message: "pattern already exists",
			})
		}
		payload.Headline = strings.TrimSpace(payload.Headline)
		if payload.Headline == "" {
			return command.Reject(command.Rejection{
				Code:    rejectionCodePatternHeadlineEmpty,
				Message: "headline is required",
			})
		}
		if payload.Confidence < 0 || payload.Confidence > 1 {
			return command.Reject(command.Rejection{
				Code:    rejectionCodePatternConfidenceInvalid,
				Message: "confidence must be between 0 and 1",
			})
		}

		payloadJSON, _ := json.Marshal(payload)
		evt := command.NewEvent(cmd, EventTypeDetected, entityType, payload.PatternID, payloadJSON, now().UTC())
		return command.Accept(evt)
	}

	patchTypes := map[command.Type]event.Type{
		CommandTypeSurface: EventTypeSurfaced,
		CommandTypePin:     EventTypePinned,
		CommandTypeDismiss: EventTypeDismissed,
		CommandTypeExpire:  EventTypeExpired,
	}
	eventType, ok := patchTypes[cmd.Type]
	if !ok {
		return command.Decision{}
	}

	var payload PatchPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	payload.PatternID = strings.TrimSpace(payload.PatternID)
	if payload.PatternID == "" {
		return command.Reject(command.Rejection{
			Code:    rejectionCodePatternIDRequired,
			Message: "pattern id is required",
		})
	}
	existing, found := state.Patterns[payload.PatternID]
	if !found {
		return command.Reject(command.Rejection{
			Code:    rejectionCodePatternNotFound,
			Message: "pattern not found",
		})
	}
	// A pinned pattern cannot be expired, only explicitly dismissed.
	if cmd.Type == CommandTypeExpire && !existing.PinnedAt.IsZero() {
		return command.Reject(command.Rejection{
			Code:    rejectionCodePatternPinned,
			Message: "pinned patterns do not expire",
		})
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, eventType, entityType, payload.PatternID, payloadJSON, now().UTC())
	return command.Accept(evt)
}
