package domain

import (
	"context"
	"time"
)

// Event kinds published after successful mutations. Consumers use them to
// invalidate anything derived from a person's history.
const (
	EventPersonCreated    = "person.created"
	EventPersonUpdated    = "person.updated"
	EventPersonDeleted    = "person.deleted"
	EventWeightCreated    = "weight.created"
	EventWeightUpdated    = "weight.updated"
	EventWeightDeleted    = "weight.deleted"
	EventGoalCreated      = "goal.created"
	EventGoalUpdated      = "goal.updated"
	EventGoalDeleted      = "goal.deleted"
	EventMilestoneCreated = "milestone.created"
	EventMilestoneUpdated = "milestone.updated"
	EventMilestoneDeleted = "milestone.deleted"
)

// Event describes a change to a person's data.
type Event struct {
	Kind     string    `json:"kind"`
	UserID   int64     `json:"user_id"`
	PersonID int64     `json:"person_id"`
	EntityID int64     `json:"entity_id"`
	At       time.Time `json:"at"`
}

// EventPublisher is the port for change notifications.
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}
