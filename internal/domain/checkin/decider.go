package checkin

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/event"
)

const (
	CommandTypeLog command.Type = "checkin.log"

	EventTypeLogged event.Type = "checkin.logged"

	rejectionCodeCheckinIDRequired    = "CHECKIN_ID_REQUIRED"
	rejectionCodeCheckinAlreadyExists = "CHECKIN_ALREADY_EXISTS"
	rejectionCodeCheckinMoodInvalid   = "CHECKIN_MOOD_INVALID"
	rejectionCodeCheckinEnergyInvalid = "CHECKIN_ENERGY_INVALID"

	entityType = "checkin"

	scaleMin = 1
	scaleMax = 5
)

// Decide returns the decision for a check-in command against current state.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	if now == nil {
		now = time.Now
	}
	if cmd.Type != CommandTypeLog {
		return command.Decision{}
	}

	var payload LoggedPayload
	_ = json.Unmarshal(cmd.PayloadJSON, &payload)
	payload.CheckinID = strings.TrimSpace(payload.CheckinID)
	if payload.CheckinID == "" {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeCheckinIDRequired,
			Message: "checkin id is required",
		})
	}
	for _, c := range state.Checkins {
		if c.ID == payload.CheckinID {
			return command.Reject(command.Rejection{
				Code:    rejectionCodeCheckinAlreadyExists,
				Message: "checkin already exists",
			})
		}
	}
	if payload.Mood < scaleMin || payload.Mood > scaleMax {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeCheckinMoodInvalid,
			Message: fmt.Sprintf("mood must be between %d and %d", scaleMin, scaleMax),
		})
	}
	if payload.Energy < scaleMin || payload.Energy > scaleMax {
		return command.Reject(command.Rejection{
			Code:    rejectionCodeCheckinEnergyInvalid,
			Message: fmt.Sprintf("energy must be between %d and %d", scaleMin, scaleMax),
		})
	}
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = now().UTC()
	}

	payloadJSON, _ := json.Marshal(payload)
	evt := command.NewEvent(cmd, EventTypeLogged, entityType, payload.CheckinID, payloadJSON, now().UTC())
	return command.Accept(evt)
}
