package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/gamification"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
)

func newProgressService(repo *MockRepo, cache domain.ProgressCache) *services.ProgressService {
	habits := services.NewHabitService(repo, repo, nil, nil, nil)
	engine := gamification.NewEngine(gamification.DefaultPointsConfig())
	return services.NewProgressService(repo, habits, engine, cache, domain.NewFixedClock(today), nil)
}

func TestDerive(t *testing.T) {
	engine := gamification.NewEngine(gamification.DefaultPointsConfig())
	habits := []domain.HabitDescriptor{
		{Key: "exercise", Label: "Exercise", Emoji: "🏃"},
		{Key: "sleep", Label: "Sleep", Emoji: "😴"},
	}

	t.Run("Edge Case: empty store", func(t *testing.T) {
		p := services.Derive(engine, domain.CompletionStore{}, habits, today)

		assert.Equal(t, 0, p.Garden.CurrentStreak)
		assert.Equal(t, 0, p.Garden.BestStreak)
		assert.Equal(t, domain.StageEmpty, p.Growth.Stage)
		assert.Equal(t, 0, p.OverallStreak)
		assert.Equal(t, 0, p.Points)
		assert.Equal(t, "Beginner", p.Level.Title)
		assert.Empty(t, p.RecentAchievements)
		assert.Len(t, p.NextAchievements, services.NextAchievementsLimit)
		assert.Len(t, p.Habits, 2)
	})

	t.Run("Success: garden union and overall conjunction", func(t *testing.T) {
		store := domain.CompletionStore{
			"exercise": {"2024-01-08": true, "2024-01-09": true, "2024-01-10": true},
			"sleep":    {"2024-01-09": true, "2024-01-10": true},
		}
		p := services.Derive(engine, store, habits, today)

		assert.Equal(t, 3, p.Garden.CurrentStreak)
		assert.Equal(t, 2, p.OverallStreak)
		assert.Equal(t, domain.StageSprout, p.Growth.Stage)
		assert.Equal(t, 5, p.Stats.TotalCompleted)
		assert.Equal(t, 3, p.Stats.LongestStreak)
		assert.Equal(t, 5*10+3*5, p.Points)
		require.Len(t, p.RecentAchievements, 1)
		assert.Equal(t, "first_habit", p.RecentAchievements[0].ID)
	})
}

func TestDerive_SurvivesJSONRoundTrip(t *testing.T) {
	engine := gamification.NewEngine(gamification.DefaultPointsConfig())
	habits := domain.DefaultHabits()[:3]
	store := domain.CompletionStore{
		"wakeUpTime":  {"2024-01-01": true, "2024-01-02": true, "2024-01-04": false, "2024-01-09": true},
		"waterIntake": {"2024-01-09": true, "2024-01-10": true},
		"sleep":       {"2023-12-31": true},
	}

	raw, err := json.Marshal(store)
	require.NoError(t, err)
	var decoded domain.CompletionStore
	require.NoError(t, json.Unmarshal(raw, &decoded))

	before := services.Derive(engine, store, habits, today)
	after := services.Derive(engine, decoded, habits, today)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("derivation changed after round trip (-before +after):\n%s", diff)
	}
}

func TestProgressService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: cache hit for today is served as is", func(t *testing.T) {
		cache := new(MockCache)
		cached := &domain.Progress{Date: today, Points: 42}
		cache.On("Get", ctx, profileID).Return(cached, nil)

		svc := newProgressService(NewMockRepo(), cache)
		got, err := svc.Get(ctx, profileID)
		require.NoError(t, err)
		assert.Same(t, cached, got)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success: snapshot from another day is recomputed", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", ctx, profileID).Return(&domain.Progress{Date: "2024-01-09", Points: 42}, nil)
		cache.On("Set", ctx, profileID, mock.AnythingOfType("*domain.Progress")).Return(nil)

		svc := newProgressService(NewMockRepo(), cache)
		got, err := svc.Get(ctx, profileID)
		require.NoError(t, err)
		assert.Equal(t, today, got.Date)
		assert.Equal(t, 0, got.Points)
		cache.AssertExpectations(t)
	})

	t.Run("Success: cache miss computes and stores", func(t *testing.T) {
		repo := NewMockRepo()
		repo.completions[profileID] = domain.CompletionStore{"sleep": {today: true}}
		cache := new(MockCache)
		cache.On("Get", ctx, profileID).Return(nil, domain.ErrCacheMiss)
		cache.On("Set", ctx, profileID, mock.AnythingOfType("*domain.Progress")).Return(nil)

		svc := newProgressService(repo, cache)
		got, err := svc.Get(ctx, profileID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Garden.CurrentStreak)
		assert.False(t, got.ComputedAt.IsZero())
		cache.AssertExpectations(t)
	})

	t.Run("Success: broken cache falls through", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", ctx, profileID).Return(nil, errors.New("connection refused"))
		cache.On("Set", ctx, profileID, mock.Anything).Return(errors.New("connection refused"))

		svc := newProgressService(NewMockRepo(), cache)
		_, err := svc.Get(ctx, profileID)
		assert.NoError(t, err)
	})

	t.Run("Success: works without a cache", func(t *testing.T) {
		svc := newProgressService(NewMockRepo(), nil)
		_, err := svc.Get(ctx, profileID)
		assert.NoError(t, err)
	})

	t.Run("Fail: repository error", func(t *testing.T) {
		repo := NewMockRepo()
		repo.simulateError = errors.New("disk unavailable")
		svc := newProgressService(repo, nil)

		_, err := svc.Get(ctx, profileID)
		assert.Error(t, err)
	})
}

func TestProgressService_Habit(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepo()
	repo.completions[profileID] = domain.CompletionStore{"sleep": {"2024-01-09": true}}
	svc := newProgressService(repo, nil)

	hp, err := svc.Habit(ctx, profileID, "sleep")
	require.NoError(t, err)
	assert.Equal(t, 1, hp.Streak.CurrentStreak)
	assert.False(t, hp.CompletedToday)
	assert.Equal(t, domain.StageSeed, hp.Growth.Stage)

	_, err = svc.Habit(ctx, profileID, "unknown")
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}
