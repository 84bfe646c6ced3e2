package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

// MockRepo is an in-memory profile store implementing the completion, habit and
// reminder repositories.
type MockRepo struct {
	mu            sync.Mutex
	completions   map[string]domain.CompletionStore
	notes         map[string]domain.NoteStore
	habits        map[string][]domain.HabitDescriptor
	reminders     map[string]domain.ReminderSettings
	simulateError error
}

func NewMockRepo() *MockRepo {
	return &MockRepo{
		completions: make(map[string]domain.CompletionStore),
		notes:       make(map[string]domain.NoteStore),
		habits:      make(map[string][]domain.HabitDescriptor),
		reminders:   make(map[string]domain.ReminderSettings),
	}
}

func (m *MockRepo) LoadCompletions(ctx context.Context, profileID string) (domain.CompletionStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	if s, ok := m.completions[profileID]; ok {
		return s, nil
	}
	return domain.CompletionStore{}, nil
}

func (m *MockRepo) SaveCompletions(ctx context.Context, profileID string, store domain.CompletionStore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.simulateError != nil {
		return m.simulateError
	}
	m.completions[profileID] = store
	return nil
}

func (m *MockRepo) LoadNotes(ctx context.Context, profileID string) (domain.NoteStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notes[profileID]; ok {
		return n, nil
	}
	return domain.NoteStore{}, nil
}

func (m *MockRepo) SaveNotes(ctx context.Context, profileID string, notes domain.NoteStore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[profileID] = notes
	return nil
}

func (m *MockRepo) ClearCompletions(ctx context.Context, profileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.completions, profileID)
	delete(m.notes, profileID)
	return nil
}

func (m *MockRepo) ListHabits(ctx context.Context, profileID string) ([]domain.HabitDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	return m.habits[profileID], nil
}

func (m *MockRepo) SaveHabits(ctx context.Context, profileID string, habits []domain.HabitDescriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.simulateError != nil {
		return m.simulateError
	}
	m.habits[profileID] = habits
	return nil
}

func (m *MockRepo) LoadReminders(ctx context.Context, profileID string) (domain.ReminderSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reminders[profileID]; ok {
		return r, nil
	}
	return domain.ReminderSettings{}, nil
}

func (m *MockRepo) SaveReminders(ctx context.Context, profileID string, settings domain.ReminderSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders[profileID] = settings
	return nil
}

func (m *MockRepo) ClearReminders(ctx context.Context, profileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reminders, profileID)
	return nil
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, profileID string) (*domain.Progress, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, profileID string, progress *domain.Progress) error {
	return m.Called(ctx, profileID, progress).Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, profileID string) error {
	return m.Called(ctx, profileID).Error(0)
}

type MockQueue struct {
	mu   sync.Mutex
	jobs []string
}

func (q *MockQueue) Enqueue(profileID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, profileID)
}

func (q *MockQueue) Jobs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.jobs...)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Schedule(profileID string, key domain.HabitKey, label, at string) (domain.ScheduledReminder, error) {
	args := m.Called(profileID, key, label, at)
	return args.Get(0).(domain.ScheduledReminder), args.Error(1)
}

func (m *MockScheduler) Cancel(profileID string, key domain.HabitKey) bool {
	return m.Called(profileID, key).Bool(0)
}

func (m *MockScheduler) CancelProfile(profileID string) int {
	return m.Called(profileID).Int(0)
}

func (m *MockScheduler) List(profileID string) []domain.ScheduledReminder {
	return m.Called(profileID).Get(0).([]domain.ScheduledReminder)
}
