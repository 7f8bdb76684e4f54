package domain

import (
	"context"
	"time"
)

// WeightEntry represents a single timestamped weight measurement in kilograms.
type WeightEntry struct {
	ID       int64     `json:"id"`
	PersonID int64     `json:"person_id"`
	Datetime time.Time `json:"datetime"`
	WeightKg float64   `json:"weight_kg"`
	Note     *string   `json:"note"`
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	AddWeightEntry(ctx context.Context, e WeightEntry) (*WeightEntry, error)
	GetWeightEntry(ctx context.Context, userID, id int64) (*WeightEntry, error)
	UpdateWeightEntry(ctx context.Context, userID int64, e WeightEntry) (*WeightEntry, error)
	DeleteWeightEntry(ctx context.Context, userID, id int64) (bool, error)
	// ListWeightEntries returns the person's entries ordered by datetime
	// ascending.
	ListWeightEntries(ctx context.Context, personID int64) ([]WeightEntry, error)
}
