package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

func TestSummaryService_PersonSummary(t *testing.T) {
	now := time.Now()
	today := domain.DateOf(now)
	start := 90.0

	weights := &mockWeightRepo{
		listFn: func(context.Context, int64) ([]domain.WeightEntry, error) {
			return []domain.WeightEntry{
				{ID: 1, PersonID: 1, Datetime: now.AddDate(0, 0, -20), WeightKg: 88},
				{ID: 2, PersonID: 1, Datetime: now.AddDate(0, 0, -5), WeightKg: 86},
				{ID: 3, PersonID: 1, Datetime: now.Add(-time.Hour), WeightKg: 85},
			}, nil
		},
	}
	var requested []int64
	goals := &mockGoalRepo{
		listFn: func(context.Context, int64) ([]domain.Goal, error) {
			return []domain.Goal{
				{ID: 7, PersonID: 1, StartDate: today.AddDays(-30), EndDate: today.AddDays(30), TargetWeightKg: 80, StartWeightKg: &start, CreatedAt: now.AddDate(0, 0, -30)},
				{ID: 8, PersonID: 1, StartDate: today.AddDays(60), EndDate: today.AddDays(90), TargetWeightKg: 75, CreatedAt: now},
			}, nil
		},
		listMilestonesFn: func(_ context.Context, ids []int64) ([]domain.Milestone, error) {
			requested = ids
			return []domain.Milestone{{ID: 1, GoalID: 7, Title: "Halfway", TargetDate: today, TargetWeightKg: 85}}, nil
		},
	}
	svc := app.NewSummaryService(&mockPersonRepo{}, weights, goals)

	s, err := svc.PersonSummary(context.Background(), 1, 1, 7, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Unit != domain.UnitKg || s.PeriodDays != 7 {
		t.Errorf("unexpected unit/period: %q %d", s.Unit, s.PeriodDays)
	}
	if len(s.Entries) != 2 {
		t.Fatalf("expected 2 entries in 7-day window, got %d", len(s.Entries))
	}
	if s.Latest == nil || s.Latest.ID != 3 {
		t.Fatalf("expected latest entry 3, got %+v", s.Latest)
	}
	if s.Change == nil || math.Abs(*s.Change-(-1)) > 1e-9 {
		t.Errorf("expected change -1, got %v", s.Change)
	}
	if s.Goal == nil || s.Goal.ID != 7 {
		t.Fatalf("expected the goal containing today, got %+v", s.Goal)
	}
	if len(requested) != 1 || requested[0] != 7 {
		t.Errorf("expected milestones of goal 7 only, got %v", requested)
	}
	if s.Progress == nil || s.Progress.Percent == nil || math.Abs(*s.Progress.Percent-50) > 1e-9 {
		t.Errorf("expected 50%% progress, got %+v", s.Progress)
	}
	if len(s.Milestones) != 1 {
		t.Errorf("expected 1 milestone, got %d", len(s.Milestones))
	}
}

func TestSummaryService_Pounds(t *testing.T) {
	weights := &mockWeightRepo{
		listFn: func(context.Context, int64) ([]domain.WeightEntry, error) {
			return []domain.WeightEntry{{ID: 1, Datetime: time.Now().Add(-time.Hour), WeightKg: 100}}, nil
		},
	}
	svc := app.NewSummaryService(&mockPersonRepo{}, weights, &mockGoalRepo{})

	s, err := svc.PersonSummary(context.Background(), 1, 1, 0, domain.UnitLb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Unit != domain.UnitLb {
		t.Errorf("expected unit lb, got %q", s.Unit)
	}
	if s.Latest == nil || math.Abs(s.Latest.WeightKg-220.462) > 0.01 {
		t.Errorf("expected ~220.46 lb, got %+v", s.Latest)
	}
	if s.Goal != nil || s.Progress != nil {
		t.Errorf("expected no goal, got %+v %+v", s.Goal, s.Progress)
	}
}

func TestSummaryService_Errors(t *testing.T) {
	svc := app.NewSummaryService(&mockPersonRepo{}, &mockWeightRepo{}, &mockGoalRepo{})
	if _, err := svc.PersonSummary(context.Background(), 1, 1, 0, "stone"); !errors.Is(err, app.ErrUnsupportedUnit) {
		t.Fatalf("expected ErrUnsupportedUnit, got %v", err)
	}

	svc = app.NewSummaryService(&mockPersonRepo{getFn: notFoundPerson}, &mockWeightRepo{}, &mockGoalRepo{})
	if _, err := svc.PersonSummary(context.Background(), 1, 1, 0, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummaryService_Empty(t *testing.T) {
	svc := app.NewSummaryService(&mockPersonRepo{}, &mockWeightRepo{}, &mockGoalRepo{})
	s, err := svc.PersonSummary(context.Background(), 1, 1, 30, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Latest != nil || s.Change != nil || s.Trend != nil {
		t.Errorf("expected empty summary, got %+v", s)
	}
	if s.Entries == nil || s.Milestones == nil {
		t.Errorf("expected empty, non-nil slices for JSON output")
	}
}
