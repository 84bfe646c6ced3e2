// Package gamification turns completion history into points, levels and
// achievements.
package gamification

import (
	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/streak"
)

// PointsConfig holds the per-unit rewards used by CalculatePoints.
type PointsConfig struct {
	HabitCompletion   int `yaml:"habit_completion"`
	StreakBonusPerDay int `yaml:"streak_bonus_per_day"`
	PerfectWeek       int `yaml:"perfect_week"`
	PerfectMonth      int `yaml:"perfect_month"`
}

func DefaultPointsConfig() PointsConfig {
	return PointsConfig{
		HabitCompletion:   10,
		StreakBonusPerDay: 5,
		PerfectWeek:       100,
		PerfectMonth:      500,
	}
}

// ComputeUserStats aggregates the whole store. Every habit present in the store
// counts, tracked or not, so deleted habits keep contributing to history.
func ComputeUserStats(store domain.CompletionStore) domain.UserStats {
	var stats domain.UserStats

	for _, days := range store {
		completed := days.CompletedCount()
		if completed == 0 {
			continue
		}
		stats.TotalCompleted += completed
		stats.UniqueHabitsCompleted++

		best, _ := streak.Best(days.CompletedDates())
		stats.LongestStreak = max(stats.LongestStreak, best)
	}

	stats.PerfectWeeks = stats.LongestStreak / 7
	stats.PerfectMonths = stats.LongestStreak / 30
	return stats
}

type level struct {
	title string
	upTo  int // exclusive, 0 for the terminal level
}

var levels = []level{
	{"Beginner", 100},
	{"Novice", 500},
	{"Apprentice", 1000},
	{"Practitioner", 2500},
	{"Expert", 5000},
	{"Master", 10000},
	{"Grandmaster", 0},
}

// CalculateLevel maps a point total onto the level table.
func CalculateLevel(points int) domain.Level {
	points = max(points, 0)

	for i, l := range levels {
		if l.upTo != 0 && points >= l.upTo {
			continue
		}

		lvl := domain.Level{Level: i + 1, Title: l.title, ProgressToNext: 1}
		if l.upTo != 0 {
			next := l.upTo
			lvl.NextLevelPoints = &next
			lvl.PointsToNext = next - points
			lvl.ProgressToNext = float64(points) / float64(next)
		}
		return lvl
	}

	// unreachable: the last level has no upper bound
	return domain.Level{Level: len(levels), Title: levels[len(levels)-1].title, ProgressToNext: 1}
}

func sanitize(s domain.UserStats) domain.UserStats {
	s.TotalCompleted = max(s.TotalCompleted, 0)
	s.LongestStreak = max(s.LongestStreak, 0)
	s.UniqueHabitsCompleted = max(s.UniqueHabitsCompleted, 0)
	s.PerfectWeeks = max(s.PerfectWeeks, 0)
	s.PerfectMonths = max(s.PerfectMonths, 0)
	return s
}
