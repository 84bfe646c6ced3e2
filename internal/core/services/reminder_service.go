package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

type ReminderService struct {
	repo      domain.ReminderRepository
	habits    *HabitService
	scheduler domain.ReminderScheduler
	logger    *zap.Logger
}

func NewReminderService(repo domain.ReminderRepository, habits *HabitService, scheduler domain.ReminderScheduler, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		repo:      repo,
		habits:    habits,
		scheduler: scheduler,
		logger:    logger,
	}
}

type SetReminderInput struct {
	ProfileID string
	HabitKey  domain.HabitKey
	Enabled   bool
	Time      string
}

type ReminderView struct {
	Settings  domain.ReminderSettings    `json:"settings"`
	Scheduled []domain.ScheduledReminder `json:"scheduled"`
}

func (s *ReminderService) List(ctx context.Context, profileID string) (*ReminderView, error) {
	settings, err := s.repo.LoadReminders(ctx, profileID)
	if err != nil {
		return nil, err
	}
	view := &ReminderView{Settings: settings, Scheduled: []domain.ScheduledReminder{}}
	if s.scheduler != nil {
		view.Scheduled = s.scheduler.List(profileID)
	}
	return view, nil
}

// Set stores the reminder and schedules or cancels it accordingly.
func (s *ReminderService) Set(ctx context.Context, input SetReminderInput) (*domain.ReminderSetting, error) {
	habit, err := s.habits.Get(ctx, input.ProfileID, input.HabitKey)
	if err != nil {
		return nil, err
	}

	at := input.Time
	if at != "" {
		if at, err = domain.NormalizeReminderTime(at); err != nil {
			return nil, err
		}
	}

	setting := domain.ReminderSetting{
		Enabled:    input.Enabled,
		Time:       at,
		HabitLabel: habit.Label,
	}
	if err := setting.Validate(); err != nil {
		return nil, err
	}

	unlock := s.habits.locks.lock(input.ProfileID)
	defer unlock()

	settings, err := s.repo.LoadReminders(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveReminders(ctx, input.ProfileID, settings.With(habit.Key, setting)); err != nil {
		return nil, err
	}

	if s.scheduler != nil {
		if setting.Enabled {
			if _, err := s.scheduler.Schedule(input.ProfileID, habit.Key, setting.HabitLabel, setting.Time); err != nil {
				return nil, fmt.Errorf("failed to schedule reminder: %w", err)
			}
		} else {
			s.scheduler.Cancel(input.ProfileID, habit.Key)
		}
	}

	return &setting, nil
}

func (s *ReminderService) Delete(ctx context.Context, profileID string, key domain.HabitKey) error {
	unlock := s.habits.locks.lock(profileID)
	defer unlock()

	settings, err := s.repo.LoadReminders(ctx, profileID)
	if err != nil {
		return err
	}
	if _, ok := settings[key]; !ok {
		return domain.ErrReminderNotFound
	}

	if err := s.repo.SaveReminders(ctx, profileID, settings.Without(key)); err != nil {
		return err
	}
	if s.scheduler != nil {
		s.scheduler.Cancel(profileID, key)
	}
	return nil
}

func (s *ReminderService) Clear(ctx context.Context, profileID string) error {
	unlock := s.habits.locks.lock(profileID)
	defer unlock()

	if err := s.repo.ClearReminders(ctx, profileID); err != nil {
		return err
	}
	if s.scheduler != nil {
		s.scheduler.CancelProfile(profileID)
	}
	return nil
}

// relabel keeps the stored and scheduled reminder of a renamed habit in step
// with its new label.
func (s *ReminderService) relabel(ctx context.Context, profileID string, key domain.HabitKey, label string) error {
	unlock := s.habits.locks.lock(profileID)
	defer unlock()

	settings, err := s.repo.LoadReminders(ctx, profileID)
	if err != nil {
		return err
	}
	setting, ok := settings[key]
	if !ok || setting.HabitLabel == label {
		return nil
	}

	setting.HabitLabel = label
	if err := s.repo.SaveReminders(ctx, profileID, settings.With(key, setting)); err != nil {
		return err
	}
	if s.scheduler != nil && setting.Enabled {
		if _, err := s.scheduler.Schedule(profileID, key, label, setting.Time); err != nil {
			return fmt.Errorf("failed to schedule reminder: %w", err)
		}
	}
	return nil
}

// Restore schedules every enabled reminder of the given profiles. A broken
// entry is logged and skipped.
func (s *ReminderService) Restore(ctx context.Context, profileIDs []string) (int, error) {
	if s.scheduler == nil {
		return 0, nil
	}

	scheduled := 0
	for _, id := range profileIDs {
		settings, err := s.repo.LoadReminders(ctx, id)
		if err != nil {
			return scheduled, err
		}
		for key, setting := range settings {
			if !setting.Enabled {
				continue
			}
			if _, err := s.scheduler.Schedule(id, key, setting.HabitLabel, setting.Time); err != nil {
				s.logger.Warn("skipping stored reminder",
					zap.String("profile_id", id),
					zap.String("habit_key", string(key)),
					zap.Error(err))
				continue
			}
			scheduled++
		}
	}
	return scheduled, nil
}
