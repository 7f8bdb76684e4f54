package app_test

import (
	"context"
	"sync"

	"weighttrack/internal/domain"
)

type mockPersonRepo struct {
	createFn func(ctx context.Context, p domain.Person) (*domain.Person, error)
	getFn    func(ctx context.Context, userID, id int64) (*domain.Person, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.Person, error)
	updateFn func(ctx context.Context, p domain.Person) (*domain.Person, error)
	deleteFn func(ctx context.Context, userID, id int64) (bool, error)
}

func (m *mockPersonRepo) CreatePerson(ctx context.Context, p domain.Person) (*domain.Person, error) {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = 1
	return &p, nil
}

func (m *mockPersonRepo) GetPerson(ctx context.Context, userID, id int64) (*domain.Person, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return &domain.Person{ID: id, UserID: userID, Name: "Alex"}, nil
}

func (m *mockPersonRepo) ListPersons(ctx context.Context, userID int64) ([]domain.Person, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPersonRepo) UpdatePerson(ctx context.Context, p domain.Person) (*domain.Person, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return &p, nil
}

func (m *mockPersonRepo) DeletePerson(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return true, nil
}

type mockWeightRepo struct {
	addFn    func(ctx context.Context, e domain.WeightEntry) (*domain.WeightEntry, error)
	getFn    func(ctx context.Context, userID, id int64) (*domain.WeightEntry, error)
	updateFn func(ctx context.Context, userID int64, e domain.WeightEntry) (*domain.WeightEntry, error)
	deleteFn func(ctx context.Context, userID, id int64) (bool, error)
	listFn   func(ctx context.Context, personID int64) ([]domain.WeightEntry, error)
}

func (m *mockWeightRepo) AddWeightEntry(ctx context.Context, e domain.WeightEntry) (*domain.WeightEntry, error) {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	e.ID = 1
	return &e, nil
}

func (m *mockWeightRepo) GetWeightEntry(ctx context.Context, userID, id int64) (*domain.WeightEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return &domain.WeightEntry{ID: id, PersonID: 1}, nil
}

func (m *mockWeightRepo) UpdateWeightEntry(ctx context.Context, userID int64, e domain.WeightEntry) (*domain.WeightEntry, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, e)
	}
	e.PersonID = 1
	return &e, nil
}

func (m *mockWeightRepo) DeleteWeightEntry(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return true, nil
}

func (m *mockWeightRepo) ListWeightEntries(ctx context.Context, personID int64) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, personID)
	}
	return nil, nil
}

type mockGoalRepo struct {
	createFn          func(ctx context.Context, g domain.Goal) (*domain.Goal, error)
	getFn             func(ctx context.Context, userID, id int64) (*domain.Goal, error)
	updateFn          func(ctx context.Context, userID int64, g domain.Goal) (*domain.Goal, error)
	deleteFn          func(ctx context.Context, userID, id int64) (bool, error)
	listFn            func(ctx context.Context, personID int64) ([]domain.Goal, error)
	addMilestoneFn    func(ctx context.Context, m domain.Milestone) (*domain.Milestone, error)
	getMilestoneFn    func(ctx context.Context, userID, id int64) (*domain.Milestone, error)
	updateMilestoneFn func(ctx context.Context, userID int64, m domain.Milestone) (*domain.Milestone, error)
	deleteMilestoneFn func(ctx context.Context, userID, id int64) (bool, error)
	listMilestonesFn  func(ctx context.Context, goalIDs []int64) ([]domain.Milestone, error)
}

func (m *mockGoalRepo) CreateGoal(ctx context.Context, g domain.Goal) (*domain.Goal, error) {
	if m.createFn != nil {
		return m.createFn(ctx, g)
	}
	g.ID = 1
	return &g, nil
}

func (m *mockGoalRepo) GetGoal(ctx context.Context, userID, id int64) (*domain.Goal, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return &domain.Goal{ID: id, PersonID: 1}, nil
}

func (m *mockGoalRepo) UpdateGoal(ctx context.Context, userID int64, g domain.Goal) (*domain.Goal, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, g)
	}
	g.PersonID = 1
	return &g, nil
}

func (m *mockGoalRepo) DeleteGoal(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return true, nil
}

func (m *mockGoalRepo) ListGoals(ctx context.Context, personID int64) ([]domain.Goal, error) {
	if m.listFn != nil {
		return m.listFn(ctx, personID)
	}
	return nil, nil
}

func (m *mockGoalRepo) AddMilestone(ctx context.Context, ms domain.Milestone) (*domain.Milestone, error) {
	if m.addMilestoneFn != nil {
		return m.addMilestoneFn(ctx, ms)
	}
	ms.ID = 1
	return &ms, nil
}

func (m *mockGoalRepo) GetMilestone(ctx context.Context, userID, id int64) (*domain.Milestone, error) {
	if m.getMilestoneFn != nil {
		return m.getMilestoneFn(ctx, userID, id)
	}
	return &domain.Milestone{ID: id, GoalID: 1}, nil
}

func (m *mockGoalRepo) UpdateMilestone(ctx context.Context, userID int64, ms domain.Milestone) (*domain.Milestone, error) {
	if m.updateMilestoneFn != nil {
		return m.updateMilestoneFn(ctx, userID, ms)
	}
	ms.GoalID = 1
	return &ms, nil
}

func (m *mockGoalRepo) DeleteMilestone(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteMilestoneFn != nil {
		return m.deleteMilestoneFn(ctx, userID, id)
	}
	return true, nil
}

func (m *mockGoalRepo) ListMilestones(ctx context.Context, goalIDs []int64) ([]domain.Milestone, error) {
	if m.listMilestonesFn != nil {
		return m.listMilestonesFn(ctx, goalIDs)
	}
	return nil, nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Kind
	}
	return out
}

func notFoundPerson(_ context.Context, _, _ int64) (*domain.Person, error) {
	return nil, nil
}
