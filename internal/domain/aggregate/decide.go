package aggregate

import (
	"strings"
	"time"

	"github.com/Fordjour12/seila/internal/domain/checkin"
	"github.com/Fordjour12/seila/internal/domain/command"
	"github.com/Fordjour12/seila/internal/domain/finance"
	"github.com/Fordjour12/seila/internal/domain/habit"
	"github.com/Fordjour12/seila/internal/domain/pattern"
	"github.com/Fordjour12/seila/internal/domain/review"
	"github.com/Fordjour12/seila/internal/domain/settings"
	"github.com/Fordjour12/seila/internal/domain/task"
)

const rejectionCodeCommandUnrouted = "COMMAND_UNROUTED"

// Decide routes a command to its domain decider by the type's domain prefix
// (the segment before the first dot). Commands for unknown domains are
// rejected, never silently dropped.
func Decide(state State, cmd command.Command, now func() time.Time) command.Decision {
	domain, _, _ := strings.Cut(string(cmd.Type), ".")
	switch domain {
	case "habit":
		return habit.Decide(state.Habits, cmd, now)
	case "envelope", "transaction":
		return finance.Decide(state.Finance, cmd, now)
	case "pattern":
		return pattern.Decide(state.Patterns, cmd, now)
	case "task":
		return task.Decide(state.Tasks, cmd, now)
	case "checkin":
		return checkin.Decide(state.Checkins, cmd, now)
	case "review":
		return review.Decide(state.Reviews, cmd, now)
	case "settings":
		return settings.Decide(state.Settings, cmd, now)
	}
	return command.Reject(command.Rejection{
		Code:    rejectionCodeCommandUnrouted,
		Message: "no domain handles this command type",
	})
}
