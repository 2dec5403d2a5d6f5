package suggestion

import (
	"fmt"
	"time"

	"github.com/Fordjour12/seila/internal/domain/task"
)

// Policy ids, one per rule in the battery.
const (
	PolicyHabitNudge       = "habit-nudge"
	PolicyCheckinLapse     = "checkin-lapse"
	PolicyMoodDip          = "mood-dip"
	PolicyInboxTriage      = "inbox-triage"
	PolicyEnvelopeCeiling  = "envelope-ceiling"
	PolicyFocusOverload    = "focus-overload"
	PolicyWeeklyReviewDue  = "weekly-review-due"
	PolicyPatternAttention = "pattern-attention"
)

const (
	checkinLapseAfter    = 3 * 24 * time.Hour
	moodDipThreshold     = 2.5
	moodDipMinDays       = 3
	inboxTriageThreshold = 5
	ceilingWarnRatio     = 0.9
	reviewCadence        = 7 * 24 * time.Hour
)

// Rule is one pure policy: snapshot in, at most one candidate out.
type Rule struct {
	PolicyID string
	Evaluate func(DomainState) *Candidate
}

// Battery returns the fixed, ordered rule battery. Priorities are display
// hints only; evaluation order and ids are stable across runs.
func Battery() []Rule {
	return []Rule{
		{PolicyID: PolicyHabitNudge, Evaluate: evalHabitNudge},
		{PolicyID: PolicyCheckinLapse, Evaluate: evalCheckinLapse},
		{PolicyID: PolicyMoodDip, Evaluate: evalMoodDip},
		{PolicyID: PolicyInboxTriage, Evaluate: evalInboxTriage},
		{PolicyID: PolicyEnvelopeCeiling, Evaluate: evalEnvelopeCeiling},
		{PolicyID: PolicyFocusOverload, Evaluate: evalFocusOverload},
		{PolicyID: PolicyWeeklyReviewDue, Evaluate: evalWeeklyReviewDue},
		{PolicyID: PolicyPatternAttention, Evaluate: evalPatternAttention},
	}
}

// Evaluate runs the battery against the snapshot. On a quiet day rule
// evaluation is skipped entirely and no candidates are produced.
func Evaluate(ds DomainState) []Candidate {
	if ds.QuietDay {
		return nil
	}
	var candidates []Candidate
	for _, rule := range Battery() {
		if c := rule.Evaluate(ds); c != nil {
			c.PolicyID = rule.PolicyID
			candidates = append(candidates, *c)
		}
	}
	return candidates
}

func evalHabitNudge(ds DomainState) *Candidate {
	var due []HabitView
	for _, h := range ds.Habits {
		if h.Due && !h.Logged {
			due = append(due, h)
		}
	}
	if len(due) == 0 {
		return nil
	}
	c := &Candidate{
		Action:   "open_habits",
		Priority: 40,
		Subtext:  fmt.Sprintf("Starting with %s.", due[0].Habit.Name),
	}
	if len(due) == 1 {
		c.Headline = fmt.Sprintf("%s is still due today", due[0].Habit.Name)
		c.Subtext = ""
	} else {
		c.Headline = fmt.Sprintf("%d habits are still due today", len(due))
	}
	return c
}

func evalCheckinLapse(ds DomainState) *Candidate {
	if !ds.Checkins.LastAt.IsZero() && ds.Now.Sub(ds.Checkins.LastAt) < checkinLapseAfter {
		return nil
	}
	c := &Candidate{
		Headline: "You haven't checked in for a few days",
		Subtext:  "A quick mood and energy log keeps the picture honest.",
		Action:   "log_checkin",
		Priority: 30,
	}
	if ds.Checkins.LastAt.IsZero() {
		c.Headline = "Log your first check-in"
	}
	return c
}

func evalMoodDip(ds DomainState) *Candidate {
	if ds.Checkins.TrackedDays < moodDipMinDays || ds.Checkins.AvgMood > moodDipThreshold {
		return nil
	}
	return &Candidate{
		Headline: "Mood has been low lately",
		Subtext:  fmt.Sprintf("Average mood %.1f over the last %d tracked days.", ds.Checkins.AvgMood, ds.Checkins.TrackedDays),
		Action:   "open_checkins",
		Priority: 50,
	}
}

func evalInboxTriage(ds DomainState) *Candidate {
	if ds.InboxCount < inboxTriageThreshold {
		return nil
	}
	return &Candidate{
		Headline: fmt.Sprintf("%d imported transactions are waiting", ds.InboxCount),
		Subtext:  "Confirm or void them to keep envelope totals current.",
		Action:   "triage_inbox",
		Priority: 20,
	}
}

func evalEnvelopeCeiling(ds DomainState) *Candidate {
	var worst *EnvelopeView
	for i := range ds.Envelopes {
		view := &ds.Envelopes[i]
		if view.Utilization < ceilingWarnRatio {
			continue
		}
		if worst == nil || view.Utilization > worst.Utilization {
			worst = view
		}
	}
	if worst == nil {
		return nil
	}
	return &Candidate{
		Headline: fmt.Sprintf("%s is at %d%% of its ceiling", worst.Envelope.Name, int(worst.Utilization*100)),
		Subtext:  "Spending this month is close to the soft limit.",
		Action:   "open_envelope:" + worst.Envelope.EnvelopeID,
		Priority: 45,
	}
}

func evalFocusOverload(ds DomainState) *Candidate {
	if ds.TaskCounts[task.StatusFocus] < task.FocusCapacity {
		return nil
	}
	return &Candidate{
		Headline: "Focus list is full",
		Subtext:  "Finish or defer something before pulling more in.",
		Action:   "open_tasks",
		Priority: 35,
	}
}

func evalWeeklyReviewDue(ds DomainState) *Candidate {
	if ds.OpenReview {
		return nil
	}
	if !ds.LastReviewAt.IsZero() && ds.Now.Sub(ds.LastReviewAt) < reviewCadence {
		return nil
	}
	return &Candidate{
		Headline: "Time for a weekly review",
		Subtext:  "Look back, reflect, and set intentions for the week.",
		Action:   "start_review",
		Priority: 25,
	}
}

func evalPatternAttention(ds DomainState) *Candidate {
	if ds.ActivePatterns == 0 {
		return nil
	}
	headline := fmt.Sprintf("%d patterns are worth a look", ds.ActivePatterns)
	if ds.ActivePatterns == 1 {
		headline = "A pattern is worth a look"
	}
	return &Candidate{
		Headline: headline,
		Subtext:  "Pin what resonates; the rest ages out on its own.",
		Action:   "open_patterns",
		Priority: 15,
	}
}
