package suggestion

import (
	"sort"
	"time"

	"github.com/Fordjour12/seila/internal/domain/aggregate"
	"github.com/Fordjour12/seila/internal/domain/checkin"
	"github.com/Fordjour12/seila/internal/domain/finance"
	"github.com/Fordjour12/seila/internal/domain/habit"
	"github.com/Fordjour12/seila/internal/domain/pattern"
	"github.com/Fordjour12/seila/internal/domain/settings"
	"github.com/Fordjour12/seila/internal/domain/task"
)

// CheckinWindowDays is how far back the check-in window reaches.
const CheckinWindowDays = 14

// HabitView pairs a habit with its due/logged standing for the current day.
type HabitView struct {
	Habit     habit.Habit
	Due       bool
	Logged    bool
	Completed bool
}

// CheckinWindow summarizes the recent check-in log.
type CheckinWindow struct {
	Entries     []checkin.Checkin
	AvgMood     float64
	AvgEnergy   float64
	TrackedDays int
	// LastAt is the most recent check-in ever, zero when none exists.
	LastAt time.Time
}

// EnvelopeView pairs an envelope with its spend this month. Utilization is 0
// when the envelope has no ceiling.
type EnvelopeView struct {
	Envelope    finance.Envelope
	Spent       int
	Utilization float64
}

// DomainState is the snapshot the policy battery evaluates. It is assembled
// once per run from folded state plus an explicit reference time.
type DomainState struct {
	Now            time.Time
	QuietDay       bool
	Habits         []HabitView
	Checkins       CheckinWindow
	InboxCount     int
	TaskCounts     map[task.Status]int
	Envelopes      []EnvelopeView
	ActivePatterns int
	OpenReview     bool
	LastReviewAt   time.Time
}

// Assemble builds the policy snapshot from composite state at the given
// reference time. Slices are ordered by id so runs are deterministic.
func Assemble(state aggregate.State, now time.Time) DomainState {
	ds := DomainState{
		Now:        now,
		QuietDay:   settings.IsQuietDay(state.Settings, now),
		TaskCounts: make(map[task.Status]int),
	}

	todayLog := habit.TodayLog(state.Habits, now)
	for _, h := range state.Habits.Active {
		entry, logged := todayLog[h.HabitID]
		ds.Habits = append(ds.Habits, HabitView{
			Habit:     h,
			Due:       habit.DueOn(h, now),
			Logged:    logged,
			Completed: logged && entry.Status == habit.LogStatusCompleted,
		})
	}
	sort.Slice(ds.Habits, func(i, j int) bool {
		return ds.Habits[i].Habit.HabitID < ds.Habits[j].Habit.HabitID
	})

	ds.Checkins = assembleCheckins(state.Checkins, now)

	for _, t := range state.Tasks.Tasks {
		ds.TaskCounts[t.Status]++
	}

	ds.InboxCount = len(finance.Inbox(state.Finance))
	monthStart := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	spent := finance.SpentSince(state.Finance, monthStart)
	for _, env := range state.Finance.Envelopes {
		view := EnvelopeView{Envelope: env, Spent: spent[env.EnvelopeID]}
		if env.SoftCeiling > 0 {
			view.Utilization = float64(view.Spent) / float64(env.SoftCeiling)
		}
		ds.Envelopes = append(ds.Envelopes, view)
	}
	sort.Slice(ds.Envelopes, func(i, j int) bool {
		return ds.Envelopes[i].Envelope.EnvelopeID < ds.Envelopes[j].Envelope.EnvelopeID
	})

	ds.ActivePatterns = len(pattern.Active(state.Patterns, now))

	ds.OpenReview = state.Reviews.Current != nil
	for _, r := range state.Reviews.History {
		if r.ClosedAt.After(ds.LastReviewAt) {
			ds.LastReviewAt = r.ClosedAt
		}
	}
	return ds
}

func assembleCheckins(state checkin.State, now time.Time) CheckinWindow {
	window := CheckinWindow{
		Entries: checkin.Since(state, now.AddDate(0, 0, -CheckinWindowDays)),
	}
	for _, c := range state.Checkins {
		if c.OccurredAt.After(window.LastAt) {
			window.LastAt = c.OccurredAt
		}
	}
	if len(window.Entries) == 0 {
		return window
	}

	var moodSum, energySum int
	days := make(map[string]bool)
	for _, c := range window.Entries {
		moodSum += c.Mood
		energySum += c.Energy
		days[c.OccurredAt.UTC().Format("2006-01-02")] = true
	}
	window.AvgMood = float64(moodSum) / float64(len(window.Entries))
	window.AvgEnergy = float64(energySum) / float64(len(window.Entries))
	window.TrackedDays = len(days)
	return window
}
