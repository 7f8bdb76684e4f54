package app

import (
	"context"
	"time"

	"weighttrack/internal/domain"
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	persons domain.PersonRepository
	repo    domain.WeightRepository
	notifier
	now func() time.Time
}

// NewWeightService creates a WeightService backed by the given repositories.
// pub may be nil.
func NewWeightService(persons domain.PersonRepository, repo domain.WeightRepository, pub domain.EventPublisher) *WeightService {
	return &WeightService{persons: persons, repo: repo, notifier: newNotifier(pub), now: time.Now}
}

// List returns the person's entries in ascending order, limited to the
// trailing periodDays (all history when periodDays <= 0).
func (s *WeightService) List(ctx context.Context, userID, personID int64, periodDays int) ([]domain.WeightEntry, error) {
	if _, err := ownedPerson(ctx, s.persons, userID, personID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListWeightEntries(ctx, personID)
	if err != nil {
		return nil, err
	}
	return domain.WindowEntries(domain.SortEntries(entries), periodDays, s.now()), nil
}

// Add validates and stores a new entry for one of the user's persons.
func (s *WeightService) Add(ctx context.Context, userID, personID int64, e domain.WeightEntry) (*domain.WeightEntry, error) {
	if err := validateEntry(&e); err != nil {
		return nil, err
	}
	if _, err := ownedPerson(ctx, s.persons, userID, personID); err != nil {
		return nil, err
	}
	e.PersonID = personID
	created, err := s.repo.AddWeightEntry(ctx, e)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventWeightCreated, userID, personID, created.ID)
	return created, nil
}

// Update changes the weight, timestamp and note of an existing entry.
func (s *WeightService) Update(ctx context.Context, userID, id int64, e domain.WeightEntry) (*domain.WeightEntry, error) {
	if err := validateEntry(&e); err != nil {
		return nil, err
	}
	e.ID = id
	updated, err := s.repo.UpdateWeightEntry(ctx, userID, e)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	s.notify(ctx, domain.EventWeightUpdated, userID, updated.PersonID, id)
	return updated, nil
}

// Delete removes an entry.
func (s *WeightService) Delete(ctx context.Context, userID, id int64) error {
	existing, err := s.repo.GetWeightEntry(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	deleted, err := s.repo.DeleteWeightEntry(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	s.notify(ctx, domain.EventWeightDeleted, userID, existing.PersonID, id)
	return nil
}
