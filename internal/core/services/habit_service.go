package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

type HabitService struct {
	repo        domain.HabitRepository
	completions domain.CompletionRepository
	reminders   *ReminderService
	changes     *changeNotifier
	locks       *profileLocks
}

func NewHabitService(repo domain.HabitRepository, completions domain.CompletionRepository, cache domain.ProgressCache, queue ProgressQueue, logger *zap.Logger) *HabitService {
	return &HabitService{
		repo:        repo,
		completions: completions,
		changes:     newChangeNotifier(cache, queue, logger),
		locks:       newProfileLocks(),
	}
}

// WithReminders lets Delete drop the reminder of a removed habit and Update
// relabel it.
func (s *HabitService) WithReminders(reminders *ReminderService) *HabitService {
	s.reminders = reminders
	return s
}

type CreateHabitInput struct {
	ProfileID string
	Label     string
	Emoji     string
}

type UpdateHabitInput struct {
	ProfileID string
	Key       domain.HabitKey
	Label     string
	Emoji     string
}

// List returns the profile's habits, or the default set when it never saved any.
func (s *HabitService) List(ctx context.Context, profileID string) ([]domain.HabitDescriptor, error) {
	habits, err := s.repo.ListHabits(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		return domain.DefaultHabits(), nil
	}
	return habits, nil
}

func (s *HabitService) Get(ctx context.Context, profileID string, key domain.HabitKey) (*domain.HabitDescriptor, error) {
	habits, err := s.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	h, ok := domain.FindHabit(habits, key)
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return &h, nil
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.HabitDescriptor, error) {
	habit, err := domain.NewCustomHabit(input.Label, input.Emoji)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(input.ProfileID)
	defer unlock()

	habits, err := s.List(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	if _, exists := domain.FindHabit(habits, habit.Key); exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrHabitKeyExists, habit.Key)
	}

	next := make([]domain.HabitDescriptor, 0, len(habits)+1)
	next = append(next, habits...)
	next = append(next, habit)

	if err := s.repo.SaveHabits(ctx, input.ProfileID, next); err != nil {
		return nil, err
	}

	s.changes.touch(ctx, input.ProfileID)
	return &habit, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.HabitDescriptor, error) {
	updated, err := s.update(ctx, input)
	if err != nil {
		return nil, err
	}
	s.changes.touch(ctx, input.ProfileID)

	if s.reminders != nil {
		if err := s.reminders.relabel(ctx, input.ProfileID, updated.Key, updated.Label); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *HabitService) update(ctx context.Context, input UpdateHabitInput) (*domain.HabitDescriptor, error) {
	unlock := s.locks.lock(input.ProfileID)
	defer unlock()

	habits, err := s.List(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	next := make([]domain.HabitDescriptor, len(habits))
	copy(next, habits)

	for i := range next {
		if next[i].Key != input.Key {
			continue
		}
		if err := next[i].Update(input.Label, input.Emoji); err != nil {
			return nil, err
		}
		if err := s.repo.SaveHabits(ctx, input.ProfileID, next); err != nil {
			return nil, err
		}
		updated := next[i]
		return &updated, nil
	}

	return nil, domain.ErrHabitNotFound
}

// Delete removes the habit together with its completions, notes and reminder.
func (s *HabitService) Delete(ctx context.Context, profileID string, key domain.HabitKey) error {
	if err := s.delete(ctx, profileID, key); err != nil {
		return err
	}

	if s.reminders != nil {
		if err := s.reminders.Delete(ctx, profileID, key); err != nil && !isNotFound(err) {
			return err
		}
	}

	s.changes.touch(ctx, profileID)
	return nil
}

func (s *HabitService) delete(ctx context.Context, profileID string, key domain.HabitKey) error {
	unlock := s.locks.lock(profileID)
	defer unlock()

	habits, err := s.List(ctx, profileID)
	if err != nil {
		return err
	}
	if _, ok := domain.FindHabit(habits, key); !ok {
		return domain.ErrHabitNotFound
	}

	next := make([]domain.HabitDescriptor, 0, len(habits)-1)
	for _, h := range habits {
		if h.Key != key {
			next = append(next, h)
		}
	}
	if err := s.repo.SaveHabits(ctx, profileID, next); err != nil {
		return err
	}

	store, err := s.completions.LoadCompletions(ctx, profileID)
	if err != nil {
		return err
	}
	if _, ok := store[key]; ok {
		if err := s.completions.SaveCompletions(ctx, profileID, store.WithoutHabit(key)); err != nil {
			return err
		}
	}

	notes, err := s.completions.LoadNotes(ctx, profileID)
	if err != nil {
		return err
	}
	if _, ok := notes[key]; ok {
		return s.completions.SaveNotes(ctx, profileID, notes.WithoutHabit(key))
	}
	return nil
}
