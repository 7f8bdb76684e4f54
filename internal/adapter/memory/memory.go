// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"weighttrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu         sync.Mutex
	users      []*domain.User
	persons    map[int64]domain.Person
	weights    map[int64]domain.WeightEntry
	goals      map[int64]domain.Goal
	milestones map[int64]domain.Milestone

	userIDCounter      int64
	personIDCounter    int64
	weightIDCounter    int64
	goalIDCounter      int64
	milestoneIDCounter int64

	now func() time.Time
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		persons:    make(map[int64]domain.Person),
		weights:    make(map[int64]domain.WeightEntry),
		goals:      make(map[int64]domain.Goal),
		milestones: make(map[int64]domain.Milestone),
		now:        time.Now,
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.PersonRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)

// ownsPerson must be called with db.mu held.
func (db *DB) ownsPerson(userID, personID int64) bool {
	p, ok := db.persons[personID]
	return ok && p.UserID == userID
}

// ownsGoal must be called with db.mu held.
func (db *DB) ownsGoal(userID, goalID int64) bool {
	g, ok := db.goals[goalID]
	return ok && db.ownsPerson(userID, g.PersonID)
}

// --- UserRepository ---

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    db.now().UTC(),
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// --- PersonRepository ---

// CreatePerson stores a new person.
func (db *DB) CreatePerson(ctx context.Context, p domain.Person) (*domain.Person, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.personIDCounter++
	p.ID = db.personIDCounter
	p.CreatedAt = db.now().UTC()
	db.persons[p.ID] = p
	return &p, nil
}

// GetPerson returns the person if it belongs to userID.
func (db *DB) GetPerson(ctx context.Context, userID, id int64) (*domain.Person, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.ownsPerson(userID, id) {
		return nil, nil
	}
	p := db.persons[id]
	return &p, nil
}

// ListPersons returns the user's persons ordered by id.
func (db *DB) ListPersons(ctx context.Context, userID int64) ([]domain.Person, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.Person{}
	for _, p := range db.persons {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpdatePerson replaces the editable fields of a person owned by p.UserID.
func (db *DB) UpdatePerson(ctx context.Context, p domain.Person) (*domain.Person, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.ownsPerson(p.UserID, p.ID) {
		return nil, nil
	}
	p.CreatedAt = db.persons[p.ID].CreatedAt
	db.persons[p.ID] = p
	return &p, nil
}

// DeletePerson removes a person with its entries, goals and milestones.
func (db *DB) DeletePerson(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.ownsPerson(userID, id) {
		return false, nil
	}
	delete(db.persons, id)
	for wid, w := range db.weights {
		if w.PersonID == id {
			delete(db.weights, wid)
		}
	}
	for gid, g := range db.goals {
		if g.PersonID == id {
			db.deleteGoalLocked(gid)
		}
	}
	return true, nil
}

// --- WeightRepository ---

// AddWeightEntry stores a new weight entry.
func (db *DB) AddWeightEntry(ctx context.Context, e domain.WeightEntry) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.persons[e.PersonID]; !ok {
		return nil, errors.New("person does not exist")
	}
	db.weightIDCounter++
	e.ID = db.weightIDCounter
	e.Datetime = e.Datetime.UTC()
	db.weights[e.ID] = e
	return &e, nil
}

// GetWeightEntry returns the entry if its person belongs to userID.
func (db *DB) GetWeightEntry(ctx context.Context, userID, id int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e, ok := db.weights[id]
	if !ok || !db.ownsPerson(userID, e.PersonID) {
		return nil, nil
	}
	return &e, nil
}

// UpdateWeightEntry changes the datetime, weight and note of an entry. The
// entry keeps its person.
func (db *DB) UpdateWeightEntry(ctx context.Context, userID int64, e domain.WeightEntry) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	existing, ok := db.weights[e.ID]
	if !ok || !db.ownsPerson(userID, existing.PersonID) {
		return nil, nil
	}
	existing.Datetime = e.Datetime.UTC()
	existing.WeightKg = e.WeightKg
	existing.Note = e.Note
	db.weights[e.ID] = existing
	return &existing, nil
}

// DeleteWeightEntry removes an entry.
func (db *DB) DeleteWeightEntry(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e, ok := db.weights[id]
	if !ok || !db.ownsPerson(userID, e.PersonID) {
		return false, nil
	}
	delete(db.weights, id)
	return true, nil
}

// ListWeightEntries lists the person's entries in ascending datetime order.
func (db *DB) ListWeightEntries(ctx context.Context, personID int64) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.WeightEntry{}
	for _, e := range db.weights {
		if e.PersonID == personID {
			result = append(result, e)
		}
	}
	return domain.SortEntries(result), nil
}

// --- GoalRepository ---

// CreateGoal stores a new goal.
func (db *DB) CreateGoal(ctx context.Context, g domain.Goal) (*domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.persons[g.PersonID]; !ok {
		return nil, errors.New("person does not exist")
	}
	db.goalIDCounter++
	g.ID = db.goalIDCounter
	g.CreatedAt = db.now().UTC()
	g.Milestones = nil
	db.goals[g.ID] = g
	return &g, nil
}

// GetGoal returns the goal if its person belongs to userID.
func (db *DB) GetGoal(ctx context.Context, userID, id int64) (*domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.ownsGoal(userID, id) {
		return nil, nil
	}
	g := db.goals[id]
	return &g, nil
}

// UpdateGoal replaces the dates, weights and lock flag of a goal.
func (db *DB) UpdateGoal(ctx context.Context, userID int64, g domain.Goal) (*domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.ownsGoal(userID, g.ID) {
		return nil, nil
	}
	existing := db.goals[g.ID]
	existing.StartDate = g.StartDate
	existing.EndDate = g.EndDate
	existing.TargetWeightKg = g.TargetWeightKg
	existing.StartWeightKg = g.StartWeightKg
	existing.LockStartToFirstLog = g.LockStartToFirstLog
	db.goals[g.ID] = existing
	return &existing, nil
}

// DeleteGoal removes a goal and its milestones.
func (db *DB) DeleteGoal(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.ownsGoal(userID, id) {
		return false, nil
	}
	db.deleteGoalLocked(id)
	return true, nil
}

func (db *DB) deleteGoalLocked(id int64) {
	delete(db.goals, id)
	for mid, m := range db.milestones {
		if m.GoalID == id {
			delete(db.milestones, mid)
		}
	}
}

// ListGoals lists the person's goals, most recently created first.
func (db *DB) ListGoals(ctx context.Context, personID int64) ([]domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.Goal{}
	for _, g := range db.goals {
		if g.PersonID == personID {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// AddMilestone stores a new milestone.
func (db *DB) AddMilestone(ctx context.Context, m domain.Milestone) (*domain.Milestone, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.goals[m.GoalID]; !ok {
		return nil, errors.New("goal does not exist")
	}
	db.milestoneIDCounter++
	m.ID = db.milestoneIDCounter
	db.milestones[m.ID] = m
	return &m, nil
}

// GetMilestone returns the milestone if its goal belongs to userID.
func (db *DB) GetMilestone(ctx context.Context, userID, id int64) (*domain.Milestone, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	m, ok := db.milestones[id]
	if !ok || !db.ownsGoal(userID, m.GoalID) {
		return nil, nil
	}
	return &m, nil
}

// UpdateMilestone replaces the fields of a milestone. It stays on its goal.
func (db *DB) UpdateMilestone(ctx context.Context, userID int64, m domain.Milestone) (*domain.Milestone, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	existing, ok := db.milestones[m.ID]
	if !ok || !db.ownsGoal(userID, existing.GoalID) {
		return nil, nil
	}
	m.GoalID = existing.GoalID
	db.milestones[m.ID] = m
	return &m, nil
}

// DeleteMilestone removes a milestone.
func (db *DB) DeleteMilestone(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	m, ok := db.milestones[id]
	if !ok || !db.ownsGoal(userID, m.GoalID) {
		return false, nil
	}
	delete(db.milestones, id)
	return true, nil
}

// ListMilestones lists the milestones of the given goals ordered by id.
func (db *DB) ListMilestones(ctx context.Context, goalIDs []int64) ([]domain.Milestone, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.Milestone{}
	for _, m := range db.milestones {
		if slices.Contains(goalIDs, m.GoalID) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
