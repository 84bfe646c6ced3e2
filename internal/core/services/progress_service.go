package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/gamification"
	"github.com/comitanigiacomo/habit-garden/internal/core/growth"
	"github.com/comitanigiacomo/habit-garden/internal/core/report"
	"github.com/comitanigiacomo/habit-garden/internal/core/streak"
)

const (
	RecentAchievementsLimit = 3
	NextAchievementsLimit   = 6
)

type ProgressService struct {
	completions domain.CompletionRepository
	habits      *HabitService
	engine      *gamification.Engine
	cache       domain.ProgressCache
	clock       domain.Clock
	logger      *zap.Logger
}

func NewProgressService(
	completions domain.CompletionRepository,
	habits *HabitService,
	engine *gamification.Engine,
	cache domain.ProgressCache,
	clock domain.Clock,
	logger *zap.Logger,
) *ProgressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{
		completions: completions,
		habits:      habits,
		engine:      engine,
		cache:       cache,
		clock:       clock,
		logger:      logger,
	}
}

// Get serves the cached snapshot when it was computed for today, and
// recomputes otherwise.
func (s *ProgressService) Get(ctx context.Context, profileID string) (*domain.Progress, error) {
	today := s.clock.Today()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, profileID)
		switch {
		case err == nil && cached.Date == today:
			return cached, nil
		case err != nil && !errors.Is(err, domain.ErrCacheMiss):
			s.logger.Warn("progress cache read failed", zap.String("profile_id", profileID), zap.Error(err))
		}
	}

	return s.Refresh(ctx, profileID)
}

// Refresh recomputes the snapshot and stores it in the cache. The profile lock
// keeps a write from landing between the read and the cache store. Writers
// invalidate after saving, so a snapshot older than the last write never
// outlives it in the cache.
func (s *ProgressService) Refresh(ctx context.Context, profileID string) (*domain.Progress, error) {
	unlock := s.habits.locks.lock(profileID)
	defer unlock()

	progress, err := s.Compute(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profileID, progress); err != nil {
			s.logger.Warn("progress cache write failed", zap.String("profile_id", profileID), zap.Error(err))
		}
	}
	return progress, nil
}

// Compute derives the full progress view from the stored state, bypassing the cache.
func (s *ProgressService) Compute(ctx context.Context, profileID string) (*domain.Progress, error) {
	store, err := s.completions.LoadCompletions(ctx, profileID)
	if err != nil {
		return nil, err
	}
	habits, err := s.habits.List(ctx, profileID)
	if err != nil {
		return nil, err
	}

	progress := Derive(s.engine, store, habits, s.clock.Today())
	progress.ComputedAt = s.clock.Now().UTC()
	return progress, nil
}

func (s *ProgressService) Habit(ctx context.Context, profileID string, key domain.HabitKey) (*domain.HabitProgress, error) {
	habit, err := s.habits.Get(ctx, profileID, key)
	if err != nil {
		return nil, err
	}
	store, err := s.completions.LoadCompletions(ctx, profileID)
	if err != nil {
		return nil, err
	}

	hp := report.HabitSummary(*habit, store[key], s.clock.Today())
	return &hp, nil
}

// Derive runs every derivation over one immutable store snapshot.
func Derive(engine *gamification.Engine, store domain.CompletionStore, habits []domain.HabitDescriptor, today domain.DateKey) *domain.Progress {
	keys := domain.HabitKeys(habits)
	garden := streak.ForHabits(store, keys, today)
	stats := gamification.ComputeUserStats(store)
	points := engine.CalculatePoints(stats)

	return &domain.Progress{
		Date:               today,
		OverallStreak:      streak.Overall(store, keys, today),
		Garden:             garden,
		Growth:             growth.ForStreak(garden.CurrentStreak),
		Stats:              stats,
		Points:             points,
		Level:              gamification.CalculateLevel(points),
		RecentAchievements: engine.Recent(stats, RecentAchievementsLimit),
		NextAchievements:   engine.Next(stats, NextAchievementsLimit),
		Achievements:       engine.Evaluate(stats),
		Habits:             report.HabitSummaries(store, habits, today),
	}
}
