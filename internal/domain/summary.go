package domain

import (
	"sort"
	"time"
)

// Summary is the derived view of a person's history for one request. It is
// recomputed on every call and never persisted.
type Summary struct {
	Person     Person        `json:"person"`
	PeriodDays int           `json:"period_days"`
	Unit       string        `json:"unit"`
	Latest     *WeightEntry  `json:"latest"`
	Entries    []WeightEntry `json:"entries"`
	Change     *float64      `json:"change"`
	Trend      *Trend        `json:"trend"`
	Goal       *Goal         `json:"goal"`
	Progress   *GoalProgress `json:"progress"`
	Milestones []Milestone   `json:"milestones"`
}

// GoalProgress is the badge data for the active goal.
type GoalProgress struct {
	Pending       bool     `json:"pending"`
	DaysRemaining int      `json:"days_remaining"`
	ToGoKg        *float64 `json:"to_go_kg"`
	Percent       *float64 `json:"percent"`
}

// ComputeSummary builds the summary of a person's weight history.
//
// periodDays <= 0 selects the whole history; otherwise only entries within
// [now-periodDays, now] form the window used for Entries, Change and Trend.
// Latest is always the most recent entry overall. goal may be nil, in which
// case Goal, Progress and Milestones stay empty. Entries need not be sorted.
func ComputeSummary(person Person, entries []WeightEntry, goal *Goal, milestones []Milestone, periodDays int, now time.Time) Summary {
	sorted := SortEntries(entries)
	window := WindowEntries(sorted, periodDays, now)

	s := Summary{
		Person:     person,
		PeriodDays: max(periodDays, 0),
		Unit:       UnitKg,
		Entries:    window,
		Milestones: []Milestone{},
	}
	if len(sorted) > 0 {
		latest := sorted[len(sorted)-1]
		s.Latest = &latest
	}
	if len(window) >= 2 {
		change := s.Latest.WeightKg - window[0].WeightKg
		s.Change = &change
	}
	s.Trend = FitTrend(window)

	if goal != nil {
		resolved := ResolveGoal(*goal, sorted)
		resolved.Milestones = nil
		s.Goal = &resolved
		s.Progress = goalProgress(resolved, s.Latest, now)
		s.Milestones = SortMilestones(milestones)
	}
	return s
}

// SortEntries returns a copy of entries ordered by datetime ascending, ties
// broken by id.
func SortEntries(entries []WeightEntry) []WeightEntry {
	out := make([]WeightEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Datetime.Equal(out[j].Datetime) {
			return out[i].ID < out[j].ID
		}
		return out[i].Datetime.Before(out[j].Datetime)
	})
	return out
}

// WindowEntries keeps the sorted entries that fall inside the trailing window
// of periodDays ending at now. periodDays <= 0 keeps everything.
func WindowEntries(sorted []WeightEntry, periodDays int, now time.Time) []WeightEntry {
	out := make([]WeightEntry, 0, len(sorted))
	if periodDays <= 0 {
		return append(out, sorted...)
	}
	from := now.AddDate(0, 0, -periodDays)
	for _, e := range sorted {
		if e.Datetime.Before(from) || e.Datetime.After(now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ResolveGoal returns a copy of g with its start weight resolved. With
// LockStartToFirstLog the weight of the first entry at or after StartDate is
// used, or nil when there is none yet. StartDate begins at midnight UTC, so
// an entry logged early on the start day east of UTC does not count. sorted
// must be ordered ascending.
func ResolveGoal(g Goal, sorted []WeightEntry) Goal {
	if !g.LockStartToFirstLog {
		return g
	}
	g.StartWeightKg = nil
	for _, e := range sorted {
		if !e.Datetime.Before(g.StartDate.Time) {
			w := e.WeightKg
			g.StartWeightKg = &w
			break
		}
	}
	return g
}

// SelectActiveGoal picks the goal shown alongside the summary: the goal with
// the latest start date among those whose range contains today, otherwise the
// most recently created goal. Returns nil for no goals.
func SelectActiveGoal(goals []Goal, now time.Time) *Goal {
	today := DateOf(now)

	var current, newest *Goal
	for i := range goals {
		g := &goals[i]
		if g.Contains(today) && (current == nil || startsAfter(g, current)) {
			current = g
		}
		if newest == nil || createdAfter(g, newest) {
			newest = g
		}
	}
	if current != nil {
		out := *current
		return &out
	}
	if newest != nil {
		out := *newest
		return &out
	}
	return nil
}

func startsAfter(a, b *Goal) bool {
	if !a.StartDate.Equal(b.StartDate.Time) {
		return a.StartDate.After(b.StartDate.Time)
	}
	return createdAfter(a, b)
}

func createdAfter(a, b *Goal) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// SortMilestones returns a copy ordered by target date, ties broken by id.
func SortMilestones(ms []Milestone) []Milestone {
	out := make([]Milestone, len(ms))
	copy(out, ms)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TargetDate.Equal(out[j].TargetDate.Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].TargetDate.Before(out[j].TargetDate.Time)
	})
	return out
}

func goalProgress(g Goal, latest *WeightEntry, now time.Time) *GoalProgress {
	p := &GoalProgress{
		Pending:       g.StartWeightKg == nil,
		DaysRemaining: max(DateOf(now).DaysUntil(g.EndDate), 0),
	}
	if latest == nil {
		return p
	}
	toGo := latest.WeightKg - g.TargetWeightKg
	p.ToGoKg = &toGo
	if g.StartWeightKg != nil && *g.StartWeightKg != g.TargetWeightKg {
		pct := (*g.StartWeightKg - latest.WeightKg) / (*g.StartWeightKg - g.TargetWeightKg) * 100
		p.Percent = &pct
	}
	return p
}
