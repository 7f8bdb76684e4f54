package app

import (
	"context"

	"weighttrack/internal/domain"
)

// PersonService encapsulates the management of tracked persons.
type PersonService struct {
	repo domain.PersonRepository
	notifier
}

// NewPersonService creates a PersonService. pub may be nil.
func NewPersonService(repo domain.PersonRepository, pub domain.EventPublisher) *PersonService {
	return &PersonService{repo: repo, notifier: newNotifier(pub)}
}

// List returns the user's persons.
func (s *PersonService) List(ctx context.Context, userID int64) ([]domain.Person, error) {
	return s.repo.ListPersons(ctx, userID)
}

// Get returns one of the user's persons or domain.ErrNotFound.
func (s *PersonService) Get(ctx context.Context, userID, id int64) (*domain.Person, error) {
	return ownedPerson(ctx, s.repo, userID, id)
}

// Create validates and stores a new person owned by userID.
func (s *PersonService) Create(ctx context.Context, userID int64, p domain.Person) (*domain.Person, error) {
	if err := validatePerson(&p); err != nil {
		return nil, err
	}
	p.UserID = userID
	created, err := s.repo.CreatePerson(ctx, p)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventPersonCreated, userID, created.ID, created.ID)
	return created, nil
}

// Update replaces the editable fields of one of the user's persons.
func (s *PersonService) Update(ctx context.Context, userID, id int64, p domain.Person) (*domain.Person, error) {
	if err := validatePerson(&p); err != nil {
		return nil, err
	}
	p.ID, p.UserID = id, userID
	updated, err := s.repo.UpdatePerson(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	s.notify(ctx, domain.EventPersonUpdated, userID, id, id)
	return updated, nil
}

// Delete removes a person and everything recorded for it.
func (s *PersonService) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.DeletePerson(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	s.notify(ctx, domain.EventPersonDeleted, userID, id, id)
	return nil
}

func ownedPerson(ctx context.Context, repo domain.PersonRepository, userID, id int64) (*domain.Person, error) {
	p, err := repo.GetPerson(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
