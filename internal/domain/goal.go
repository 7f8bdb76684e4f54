package domain

import (
	"context"
	"time"
)

// Goal is a target weight to reach within a date range.
//
// When LockStartToFirstLog is set, StartWeightKg is not taken from the stored
// value but resolved from the first entry logged on or after StartDate; see
// ResolveGoal.
type Goal struct {
	ID                  int64       `json:"id"`
	PersonID            int64       `json:"person_id"`
	StartDate           Date        `json:"start_date"`
	EndDate             Date        `json:"end_date"`
	TargetWeightKg      float64     `json:"target_weight_kg"`
	StartWeightKg       *float64    `json:"start_weight_kg"`
	LockStartToFirstLog bool        `json:"lock_start_to_first_log"`
	CreatedAt           time.Time   `json:"created_at"`
	Milestones          []Milestone `json:"milestones,omitempty"`
}

// Contains reports whether day falls inside the goal's inclusive date range.
func (g Goal) Contains(day Date) bool {
	return !day.Before(g.StartDate.Time) && !day.After(g.EndDate.Time)
}

// Milestone is a labelled intermediate target inside a goal. It is display-only
// and never feeds the trend computation.
type Milestone struct {
	ID             int64   `json:"id"`
	GoalID         int64   `json:"goal_id"`
	Title          string  `json:"title"`
	TargetDate     Date    `json:"target_date"`
	TargetWeightKg float64 `json:"target_weight_kg"`
	Note           *string `json:"note"`
}

// GoalRepository is the port for goal and milestone persistence.
type GoalRepository interface {
	CreateGoal(ctx context.Context, g Goal) (*Goal, error)
	GetGoal(ctx context.Context, userID, id int64) (*Goal, error)
	UpdateGoal(ctx context.Context, userID int64, g Goal) (*Goal, error)
	DeleteGoal(ctx context.Context, userID, id int64) (bool, error)
	// ListGoals returns the person's goals, most recently created first.
	ListGoals(ctx context.Context, personID int64) ([]Goal, error)

	AddMilestone(ctx context.Context, m Milestone) (*Milestone, error)
	GetMilestone(ctx context.Context, userID, id int64) (*Milestone, error)
	UpdateMilestone(ctx context.Context, userID int64, m Milestone) (*Milestone, error)
	DeleteMilestone(ctx context.Context, userID, id int64) (bool, error)
	// ListMilestones returns the milestones of the given goals in no particular
	// order.
	ListMilestones(ctx context.Context, goalIDs []int64) ([]Milestone, error)
}
