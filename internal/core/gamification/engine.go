package gamification

import (
	"sort"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

type metric func(domain.UserStats) int

var (
	totalCompleted = func(s domain.UserStats) int { return s.TotalCompleted }
	longestStreak  = func(s domain.UserStats) int { return s.LongestStreak }
	perfectWeeks   = func(s domain.UserStats) int { return s.PerfectWeeks }
	perfectMonths  = func(s domain.UserStats) int { return s.PerfectMonths }
	uniqueHabits   = func(s domain.UserStats) int { return s.UniqueHabitsCompleted }
)

// Achievement is a catalog entry unlocked once a stat reaches its target.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Points      int

	metric metric
	target int
}

func (a Achievement) Unlocked(s domain.UserStats) bool {
	return a.metric(s) >= a.target
}

func (a Achievement) Progress(s domain.UserStats) float64 {
	p := float64(a.metric(s)) / float64(a.target)
	return min(max(p, 0), 1)
}

func (a Achievement) record(s domain.UserStats) domain.AchievementRecord {
	return domain.AchievementRecord{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Icon:        a.Icon,
		Points:      a.Points,
		Unlocked:    a.Unlocked(s),
		Progress:    a.Progress(s),
	}
}

var catalog = []Achievement{
	{ID: "first_habit", Name: "Getting Started", Description: "Complete your first habit", Icon: "🌱", Points: 50, metric: totalCompleted, target: 1},
	{ID: "first_week_streak", Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "🔥", Points: 100, metric: longestStreak, target: 7},
	{ID: "ten_habits", Name: "Habit Builder", Description: "Complete 10 habits", Icon: "💪", Points: 150, metric: totalCompleted, target: 10},
	{ID: "perfect_week", Name: "Perfect Week", Description: "Complete all habits for 7 consecutive days", Icon: "⭐", Points: 200, metric: perfectWeeks, target: 1},
	{ID: "fifty_habits", Name: "Consistency Champion", Description: "Complete 50 habits", Icon: "🏆", Points: 300, metric: totalCompleted, target: 50},
	{ID: "month_streak", Name: "Monthly Master", Description: "Maintain a 30-day streak", Icon: "🎯", Points: 500, metric: longestStreak, target: 30},
	{ID: "perfect_month", Name: "Perfect Month", Description: "Complete all habits for 30 consecutive days", Icon: "👑", Points: 1000, metric: perfectMonths, target: 1},
	{ID: "hundred_habits", Name: "Habit Master", Description: "Complete 100 habits", Icon: "🌟", Points: 500, metric: totalCompleted, target: 100},
	{ID: "triple_digit_streak", Name: "Century Streak", Description: "Maintain a 100-day streak", Icon: "💎", Points: 1500, metric: longestStreak, target: 100},
	{ID: "habit_variety", Name: "Well Rounded", Description: "Complete at least 5 different habit types", Icon: "🌈", Points: 200, metric: uniqueHabits, target: 5},
}

// Catalog returns a copy of the achievement definitions in display order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

type Engine struct {
	points PointsConfig
}

func NewEngine(cfg PointsConfig) *Engine {
	return &Engine{points: cfg}
}

func (e *Engine) Config() PointsConfig {
	return e.points
}

// CalculatePoints sums the completion, streak and perfect period rewards.
// Unlocked achievements are not part of the total.
func (e *Engine) CalculatePoints(stats domain.UserStats) int {
	s := sanitize(stats)
	return s.TotalCompleted*e.points.HabitCompletion +
		s.LongestStreak*e.points.StreakBonusPerDay +
		s.PerfectWeeks*e.points.PerfectWeek +
		s.PerfectMonths*e.points.PerfectMonth
}

// Evaluate partitions the catalog. Unlocked keeps catalog order, in-progress is
// sorted by descending progress with catalog order on ties.
func (e *Engine) Evaluate(stats domain.UserStats) domain.AchievementSummary {
	s := sanitize(stats)
	summary := domain.AchievementSummary{
		Unlocked:   []domain.AchievementRecord{},
		InProgress: []domain.AchievementRecord{},
	}

	for _, a := range catalog {
		rec := a.record(s)
		if rec.Unlocked {
			summary.Unlocked = append(summary.Unlocked, rec)
		} else {
			summary.InProgress = append(summary.InProgress, rec)
		}
	}

	sort.SliceStable(summary.InProgress, func(i, j int) bool {
		return summary.InProgress[i].Progress > summary.InProgress[j].Progress
	})
	return summary
}

// Next returns at most limit locked achievements, closest first. A non-positive
// limit returns all of them.
func (e *Engine) Next(stats domain.UserStats, limit int) []domain.AchievementRecord {
	return truncate(e.Evaluate(stats).InProgress, limit, false)
}

// Recent returns the last limit unlocked achievements in catalog order.
func (e *Engine) Recent(stats domain.UserStats, limit int) []domain.AchievementRecord {
	return truncate(e.Evaluate(stats).Unlocked, limit, true)
}

func truncate(recs []domain.AchievementRecord, limit int, tail bool) []domain.AchievementRecord {
	if limit <= 0 || len(recs) <= limit {
		return recs
	}
	if tail {
		return recs[len(recs)-limit:]
	}
	return recs[:limit]
}
