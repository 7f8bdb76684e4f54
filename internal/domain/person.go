package domain

import (
	"context"
	"time"
)

// Person is a tracked individual whose weight history belongs to one account.
type Person struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Name             string    `json:"name"`
	Nickname         *string   `json:"nickname"`
	StartingWeightKg *float64  `json:"starting_weight_kg"`
	HeightCm         *float64  `json:"height_cm"`
	DateOfBirth      *Date     `json:"date_of_birth"`
	CreatedAt        time.Time `json:"created_at"`
}

// PersonRepository is the port for person persistence. Every call is scoped to
// the owning user; records of other users behave as missing.
type PersonRepository interface {
	CreatePerson(ctx context.Context, p Person) (*Person, error)
	GetPerson(ctx context.Context, userID, id int64) (*Person, error)
	ListPersons(ctx context.Context, userID int64) ([]Person, error)
	UpdatePerson(ctx context.Context, p Person) (*Person, error)
	// DeletePerson removes the person together with its entries, goals and
	// milestones.
	DeletePerson(ctx context.Context, userID, id int64) (bool, error)
}
