package app

import (
	"context"
	"time"

	"weighttrack/internal/domain"
)

// SummaryService assembles the per-person summary shown on the chart.
type SummaryService struct {
	persons domain.PersonRepository
	weights domain.WeightRepository
	goals   domain.GoalRepository
	now     func() time.Time
}

// NewSummaryService creates a SummaryService backed by the given repositories.
func NewSummaryService(persons domain.PersonRepository, weights domain.WeightRepository, goals domain.GoalRepository) *SummaryService {
	return &SummaryService{persons: persons, weights: weights, goals: goals, now: time.Now}
}

// PersonSummary loads a snapshot of the person's history and computes its
// summary over the trailing periodDays (all history when <= 0), with weights
// expressed in unit ("kg" when empty).
func (s *SummaryService) PersonSummary(ctx context.Context, userID, personID int64, periodDays int, unit string) (*domain.Summary, error) {
	if unit == "" {
		unit = domain.UnitKg
	}
	if !domain.ValidUnit(unit) {
		return nil, ErrUnsupportedUnit
	}

	person, err := ownedPerson(ctx, s.persons, userID, personID)
	if err != nil {
		return nil, err
	}
	entries, err := s.weights.ListWeightEntries(ctx, personID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.ListGoals(ctx, personID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	goal := domain.SelectActiveGoal(goals, now)
	var milestones []domain.Milestone
	if goal != nil {
		milestones, err = s.goals.ListMilestones(ctx, []int64{goal.ID})
		if err != nil {
			return nil, err
		}
	}

	summary := domain.ComputeSummary(*person, entries, goal, milestones, periodDays, now).InUnit(unit)
	return &summary, nil
}
