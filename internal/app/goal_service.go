package app

import (
	"context"

	"weighttrack/internal/domain"
)

// GoalService manages goals and their milestones.
type GoalService struct {
	persons domain.PersonRepository
	weights domain.WeightRepository
	repo    domain.GoalRepository
	notifier
}

// NewGoalService creates a GoalService. pub may be nil.
func NewGoalService(persons domain.PersonRepository, weights domain.WeightRepository, repo domain.GoalRepository, pub domain.EventPublisher) *GoalService {
	return &GoalService{persons: persons, weights: weights, repo: repo, notifier: newNotifier(pub)}
}

// List returns the person's goals, newest first, each with its start weight
// resolved and its milestones ordered by target date.
func (s *GoalService) List(ctx context.Context, userID, personID int64) ([]domain.Goal, error) {
	if _, err := ownedPerson(ctx, s.persons, userID, personID); err != nil {
		return nil, err
	}
	goals, err := s.repo.ListGoals(ctx, personID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, personID, goals)
}

// Create validates and stores a goal for one of the user's persons.
func (s *GoalService) Create(ctx context.Context, userID, personID int64, g domain.Goal) (*domain.Goal, error) {
	if err := validateGoal(&g); err != nil {
		return nil, err
	}
	if _, err := ownedPerson(ctx, s.persons, userID, personID); err != nil {
		return nil, err
	}
	g.PersonID = personID
	g.Milestones = nil
	created, err := s.repo.CreateGoal(ctx, g)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventGoalCreated, userID, personID, created.ID)
	return s.hydrateOne(ctx, *created)
}

// Update replaces the dates, weights and lock flag of a goal.
func (s *GoalService) Update(ctx context.Context, userID, id int64, g domain.Goal) (*domain.Goal, error) {
	if err := validateGoal(&g); err != nil {
		return nil, err
	}
	g.ID = id
	updated, err := s.repo.UpdateGoal(ctx, userID, g)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	s.notify(ctx, domain.EventGoalUpdated, userID, updated.PersonID, id)
	return s.hydrateOne(ctx, *updated)
}

// Delete removes a goal and its milestones.
func (s *GoalService) Delete(ctx context.Context, userID, id int64) error {
	goal, err := s.ownedGoal(ctx, userID, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.DeleteGoal(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	s.notify(ctx, domain.EventGoalDeleted, userID, goal.PersonID, id)
	return nil
}

// AddMilestone attaches a milestone to one of the user's goals.
func (s *GoalService) AddMilestone(ctx context.Context, userID, goalID int64, m domain.Milestone) (*domain.Milestone, error) {
	if err := validateMilestone(&m); err != nil {
		return nil, err
	}
	goal, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	m.GoalID = goalID
	created, err := s.repo.AddMilestone(ctx, m)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventMilestoneCreated, userID, goal.PersonID, created.ID)
	return created, nil
}

// UpdateMilestone replaces the fields of a milestone. It stays on its goal.
func (s *GoalService) UpdateMilestone(ctx context.Context, userID, id int64, m domain.Milestone) (*domain.Milestone, error) {
	if err := validateMilestone(&m); err != nil {
		return nil, err
	}
	m.ID = id
	updated, err := s.repo.UpdateMilestone(ctx, userID, m)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	if goal, err := s.repo.GetGoal(ctx, userID, updated.GoalID); err == nil && goal != nil {
		s.notify(ctx, domain.EventMilestoneUpdated, userID, goal.PersonID, id)
	}
	return updated, nil
}

// DeleteMilestone removes a milestone.
func (s *GoalService) DeleteMilestone(ctx context.Context, userID, id int64) error {
	m, err := s.repo.GetMilestone(ctx, userID, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	goal, err := s.ownedGoal(ctx, userID, m.GoalID)
	if err != nil {
		return err
	}
	deleted, err := s.repo.DeleteMilestone(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	s.notify(ctx, domain.EventMilestoneDeleted, userID, goal.PersonID, id)
	return nil
}

func (s *GoalService) ownedGoal(ctx context.Context, userID, id int64) (*domain.Goal, error) {
	g, err := s.repo.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (s *GoalService) hydrateOne(ctx context.Context, g domain.Goal) (*domain.Goal, error) {
	out, err := s.hydrate(ctx, g.PersonID, []domain.Goal{g})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// hydrate resolves start weights and attaches milestones to goals of one
// person.
func (s *GoalService) hydrate(ctx context.Context, personID int64, goals []domain.Goal) ([]domain.Goal, error) {
	if len(goals) == 0 {
		return []domain.Goal{}, nil
	}
	entries, err := s.weights.ListWeightEntries(ctx, personID)
	if err != nil {
		return nil, err
	}
	sorted := domain.SortEntries(entries)

	ids := make([]int64, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	milestones, err := s.repo.ListMilestones(ctx, ids)
	if err != nil {
		return nil, err
	}
	byGoal := make(map[int64][]domain.Milestone, len(goals))
	for _, m := range milestones {
		byGoal[m.GoalID] = append(byGoal[m.GoalID], m)
	}

	out := make([]domain.Goal, len(goals))
	for i, g := range goals {
		resolved := domain.ResolveGoal(g, sorted)
		resolved.Milestones = domain.SortMilestones(byGoal[g.ID])
		out[i] = resolved
	}
	return out, nil
}
