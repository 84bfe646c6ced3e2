package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/growth"
	"github.com/comitanigiacomo/habit-garden/internal/core/streak"
)

const MaxNoteLen = 500

type CompletionService struct {
	repo      domain.CompletionRepository
	habits    *HabitService
	reminders *ReminderService
	clock     domain.Clock
	notifier  domain.Notifier
	changes   *changeNotifier
	logger    *zap.Logger
}

func NewCompletionService(
	repo domain.CompletionRepository,
	habits *HabitService,
	clock domain.Clock,
	notifier domain.Notifier,
	cache domain.ProgressCache,
	queue ProgressQueue,
	logger *zap.Logger,
) *CompletionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompletionService{
		repo:     repo,
		habits:   habits,
		clock:    clock,
		notifier: notifier,
		changes:  newChangeNotifier(cache, queue, logger),
		logger:   logger,
	}
}

// WithReminders makes Reset clear the profile's reminders as well.
func (s *CompletionService) WithReminders(reminders *ReminderService) *CompletionService {
	s.reminders = reminders
	return s
}

type ToggleInput struct {
	ProfileID string
	HabitKey  domain.HabitKey
	// Date defaults to today.
	Date domain.DateKey
}

type ToggleResult struct {
	HabitKey  domain.HabitKey     `json:"habit_key"`
	Date      domain.DateKey      `json:"date"`
	Completed bool                `json:"completed"`
	Streak    domain.StreakResult `json:"streak"`
	Stage     domain.GrowthStage  `json:"stage"`
	Message   string              `json:"message,omitempty"`
}

type SetNoteInput struct {
	ProfileID string
	HabitKey  domain.HabitKey
	Date      domain.DateKey
	Note      string
}

func (s *CompletionService) Get(ctx context.Context, profileID string) (domain.CompletionStore, error) {
	return s.repo.LoadCompletions(ctx, profileID)
}

func (s *CompletionService) Notes(ctx context.Context, profileID string) (domain.NoteStore, error) {
	return s.repo.LoadNotes(ctx, profileID)
}

func (s *CompletionService) resolveDate(date domain.DateKey) (domain.DateKey, error) {
	today := s.clock.Today()
	if date == "" {
		return today, nil
	}
	if !date.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	if date.After(today) {
		return "", fmt.Errorf("%w: %s", domain.ErrFutureDate, date)
	}
	return date, nil
}

// Toggle flips one day of one habit. Marking a day done sends a notification
// carrying the habit's current streak.
func (s *CompletionService) Toggle(ctx context.Context, input ToggleInput) (*ToggleResult, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, err
	}

	habit, err := s.habits.Get(ctx, input.ProfileID, input.HabitKey)
	if err != nil {
		return nil, err
	}

	next, err := s.toggle(ctx, input.ProfileID, habit.Key, date)
	if err != nil {
		return nil, err
	}
	s.changes.touch(ctx, input.ProfileID)

	result := streak.ForDayMap(next[habit.Key], s.clock.Today())
	out := &ToggleResult{
		HabitKey:  habit.Key,
		Date:      date,
		Completed: next.IsCompleted(habit.Key, date),
		Streak:    result,
		Stage:     growth.Classify(result.CurrentStreak),
	}

	if out.Completed {
		out.Message = growth.Congrats(out.Stage, result.CurrentStreak)
		s.notifyCompleted(ctx, *habit, result.CurrentStreak)
	}

	return out, nil
}

func (s *CompletionService) toggle(ctx context.Context, profileID string, key domain.HabitKey, date domain.DateKey) (domain.CompletionStore, error) {
	unlock := s.habits.locks.lock(profileID)
	defer unlock()

	store, err := s.repo.LoadCompletions(ctx, profileID)
	if err != nil {
		return nil, err
	}

	next := store.Toggle(key, date)
	if err := s.repo.SaveCompletions(ctx, profileID, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *CompletionService) notifyCompleted(ctx context.Context, habit domain.HabitDescriptor, current int) {
	if s.notifier == nil {
		return
	}

	n := domain.Notification{
		Title: "Habit Completed!",
		Body:  fmt.Sprintf("%s %s completed! Current streak: %d days", habit.Emoji, habit.Label, current),
		Tag:   "completion-" + string(habit.Key),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("completion notification failed",
			zap.String("habit_key", string(habit.Key)), zap.Error(err))
	}
}

// SetNote attaches a note to a day. An empty note removes it.
func (s *CompletionService) SetNote(ctx context.Context, input SetNoteInput) (domain.NoteStore, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, err
	}

	note := strings.TrimSpace(input.Note)
	if utf8.RuneCountInString(note) > MaxNoteLen {
		return nil, fmt.Errorf("%w: note exceeds %d characters", domain.ErrInvalidNote, MaxNoteLen)
	}

	if _, err := s.habits.Get(ctx, input.ProfileID, input.HabitKey); err != nil {
		return nil, err
	}

	unlock := s.habits.locks.lock(input.ProfileID)
	defer unlock()

	notes, err := s.repo.LoadNotes(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}

	next := notes.WithNote(input.HabitKey, date, note)
	if err := s.repo.SaveNotes(ctx, input.ProfileID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Reset wipes the profile's completion history, notes and reminders.
func (s *CompletionService) Reset(ctx context.Context, profileID string) error {
	unlock := s.habits.locks.lock(profileID)
	err := s.repo.ClearCompletions(ctx, profileID)
	unlock()
	if err != nil {
		return err
	}
	if s.reminders != nil {
		if err := s.reminders.Clear(ctx, profileID); err != nil {
			return err
		}
	}
	s.changes.touch(ctx, profileID)
	return nil
}
