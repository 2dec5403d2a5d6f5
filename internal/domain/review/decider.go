package review

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

const (
	CommandTypeStart   command.Type = "review.start"
	CommandTypeAdvance command.Type = "review.advance"
	CommandTypeClose   command.Type = "review.close"
	CommandTypeSkip    command.Type = "review.skip"

	EventTypeStarted  event.Type = "review.started"
	EventTypeAdvanced event.Type = "review.advanced"
	EventTypeClosed   event.Type = "review.closed"
	EventTypeSkipped  event.Type = "review.skipped"

	rejectionCodeReviewIDRequired   = "REVIEW_ID_REQUIRED"
	rejectionCodeReviewAlreadyOpen  = "REVIEW_ALREADY_OPEN"
	rejectionCodeReviewNotOpen      = "REVIEW_NOT_OPEN"
	rejectionCodeReviewPhaseInvalid = "REVIEW_PHASE_INVALID"

	entityType = "review"
)

// Decide returns the decision for a review command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}

	switch cmd.Type {
	case CommandTypeStart:
		var payload StartedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.ReviewID = strings.TrimSpace(payload.ReviewID)
		if payload.ReviewID == "" {
			return rejectIDRequired()
		}
		if state.Current != nil {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeReviewAlreadyOpen,
				Message: "a review is already open",
			})
		}
		payloadJSON, _ := json.Marshal(payload)
		return command.Accept(command.NewEvent(cmd, EventTypeStarted, entityType, payload.ReviewID, payloadJSON, now().UTC()))

	case CommandTypeAdvance:
		var payload AdvancedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.ReviewID = strings.TrimSpace(payload.ReviewID)
		if payload.ReviewID == "" {
			return rejectIDRequired()
		}
		if rejection, ok := requireOpen(state, payload.ReviewID); !ok {
			return command.Reject(rejection)
		}
		if _, ok := state.Current.Phase.Next(); !ok {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeReviewPhaseInvalid,
				Message: "review has no further phase; close it instead",
			})
		}
		payloadJSON, _ := json.Marshal(payload)
		return command.Accept(command.NewEvent(cmd, EventTypeAdvanced, entityType, payload.ReviewID, payloadJSON, now().UTC()))

	case CommandTypeClose:
		var payload ClosedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.ReviewID = strings.TrimSpace(payload.ReviewID)
		if payload.ReviewID == "" {
			return rejectIDRequired()
		}
		if rejection, ok := requireOpen(state, payload.ReviewID); !ok {
			return command.Reject(rejection)
		}
		if state.Current.Phase != PhaseIntentions {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeReviewPhaseInvalid,
				Message: "review can only close from the intentions phase",
			})
		}
		payloadJSON, _ := json.Marshal(payload)
		return command.Accept(command.NewEvent(cmd, EventTypeClosed, entityType, payload.ReviewID, payloadJSON, now().UTC()))

	case CommandTypeSkip:
		var payload SkippedPayload
		_ = json.Unmarshal(cmd.PayloadJSON, &payload)
		payload.ReviewID = strings.TrimSpace(payload.ReviewID)
		if payload.ReviewID == "" {
			return rejectIDRequired()
		}
		// Skip is valid from any open phase.
		if rejection, ok := requireOpen(state, payload.ReviewID); !ok {
			return command.Reject(rejection)
		}
		payloadJSON, _ := json.Marshal(payload)
		return command.Accept(command.NewEvent(cmd, EventTypeSkipped, entityType, payload.ReviewID, payloadJSON, now().UTC()))
	}
	return command.Decision{}
}

func rejectIDRequired() command.Decision {
	return command.Reject(command.Rejection{
		Code:    rejectionCodeReviewIDRequired,
		Message: "review id is required",
	})
}

func requireOpen(state State, reviewID string) (command.Rejection, bool) {
	if state.Current == nil || state.Current.ID != reviewID {
		return command.Rejection{
			Code:    rejectionCodeReviewNotOpen,
			Message: "no open review with this id",
		}, false
	}
	return command.Rejection{}, true
}
