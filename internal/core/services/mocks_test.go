package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	return m.Called(ctx, habit).Error(0)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *MockHabitRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) Upsert(ctx context.Context, c *domain.Completion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompletionRepo) GetByDate(ctx context.Context, habitID string, date time.Time) (*domain.Completion, error) {
	args := m.Called(ctx, habitID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Completion), args.Error(1)
}

func (m *MockCompletionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCompletionRepo) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	args := m.Called(ctx, habitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

func (m *MockCompletionRepo) ListByHabitIDWithRange(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
	args := m.Called(ctx, habitID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Completion), args.Error(1)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, habitID, today string) (*domain.HabitStats, int64, bool) {
	args := m.Called(ctx, habitID, today)
	gen, _ := args.Get(1).(int64)
	if args.Get(0) == nil {
		return nil, gen, args.Bool(2)
	}
	return args.Get(0).(*domain.HabitStats), gen, args.Bool(2)
}

func (m *MockStatsCache) Set(ctx context.Context, stats *domain.HabitStats, generation int64) error {
	return m.Called(ctx, stats, generation).Error(0)
}

func (m *MockStatsCache) Invalidate(ctx context.Context, habitID string) {
	m.Called(ctx, habitID)
}

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Enqueue(habitID string) {
	m.Called(habitID)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchDollar(ctx context.Context) (*domain.DollarRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DollarRate), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}
