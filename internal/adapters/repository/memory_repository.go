package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

// In-memory repositories back the test suites and the server when no
// database is configured. They store copies so callers cannot mutate state.

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	// completions, when set, loses the rows of deleted habits like the
	// foreign key cascade does.
	completions *InMemoryCompletionRepository

	mu sync.RWMutex
}

func NewInMemoryHabitRepository(completions *InMemoryCompletionRepository) *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store:       make(map[string]*domain.Habit),
		completions: completions,
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := []*domain.Habit{}
	for _, h := range r.store {
		if h.UserID == userID {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	if r.completions != nil {
		r.completions.deleteByHabit(id)
	}
	return nil
}

type InMemoryCompletionRepository struct {
	// byDay maps habit id to date key to completion.
	byDay map[string]map[string]*domain.Completion

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		byDay: make(map[string]map[string]*domain.Completion),
	}
}

func (r *InMemoryCompletionRepository) Upsert(ctx context.Context, c *domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.CompletedDate = domain.DateOnly(c.CompletedDate)
	days, ok := r.byDay[c.HabitID]
	if !ok {
		days = make(map[string]*domain.Completion)
		r.byDay[c.HabitID] = days
	}

	if existing, ok := days[c.DateKey()]; ok {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		c.UpdatedAt = time.Now().UTC()
	}

	clone := *c
	days[c.DateKey()] = &clone
	return nil
}

func (r *InMemoryCompletionRepository) GetByDate(ctx context.Context, habitID string, date time.Time) (*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byDay[habitID][domain.DateOnly(date).Format(domain.DateLayout)]
	if !ok {
		return nil, domain.ErrCompletionNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *InMemoryCompletionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, days := range r.byDay {
		for key, c := range days {
			if c.ID == id {
				delete(days, key)
				return nil
			}
		}
	}
	return domain.ErrCompletionNotFound
}

func (r *InMemoryCompletionRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	return r.list(habitID, func(time.Time) bool { return true }), nil
}

func (r *InMemoryCompletionRepository) ListByHabitIDWithRange(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	return r.list(habitID, func(d time.Time) bool {
		return !d.Before(from) && !d.After(to)
	}), nil
}

func (r *InMemoryCompletionRepository) list(habitID string, keep func(time.Time) bool) []*domain.Completion {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Completion{}
	for _, c := range r.byDay[habitID] {
		if keep(c.CompletedDate) {
			clone := *c
			out = append(out, &clone)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedDate.After(out[j].CompletedDate)
	})
	return out
}

func (r *InMemoryCompletionRepository) deleteByHabit(habitID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byDay, habitID)
}

type InMemoryUserRepository struct {
	byID    map[string]*domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}

	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}
