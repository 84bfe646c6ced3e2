package domain

import "time"

// StreakResult is derived on demand and never persisted.
type StreakResult struct {
	CurrentStreak   int       `json:"current_streak"`
	BestStreak      int       `json:"best_streak"`
	BestStreakDates []DateKey `json:"best_streak_dates"`
}

type GrowthStage string

const (
	StageEmpty         GrowthStage = "empty"
	StageSeed          GrowthStage = "seed"
	StageSprout        GrowthStage = "sprout"
	StageSapling       GrowthStage = "sapling"
	StageTree          GrowthStage = "tree"
	StageMatureTree    GrowthStage = "mature_tree"
	StageFloweringTree GrowthStage = "flowering_tree"
	StageFruitTree     GrowthStage = "fruit_tree"
	StageAncientTree   GrowthStage = "ancient_tree"
)

type StageInfo struct {
	Stage       GrowthStage  `json:"stage"`
	Name        string       `json:"name"`
	Emoji       string       `json:"emoji"`
	Description string       `json:"description"`
	Color       string       `json:"color"`
	BgColor     string       `json:"bg_color"`
	Message     string       `json:"message"`
	MinStreak   int          `json:"min_streak"`
	MaxStreak   *int         `json:"max_streak"`
	NextStage   *GrowthStage `json:"next_stage"`
	Requirement string       `json:"requirement"`
}

type JourneyStep struct {
	Stage     GrowthStage `json:"stage"`
	Name      string      `json:"name"`
	Emoji     string      `json:"emoji"`
	MinStreak int         `json:"min_streak"`
	Unlocked  bool        `json:"unlocked"`
	Current   bool        `json:"current"`
}

type Growth struct {
	Stage          GrowthStage `json:"stage"`
	Info           StageInfo   `json:"info"`
	ProgressToNext float64     `json:"progress_to_next"`
}

type UserStats struct {
	TotalCompleted        int `json:"total_completed"`
	LongestStreak         int `json:"longest_streak"`
	UniqueHabitsCompleted int `json:"unique_habits_completed"`
	PerfectWeeks          int `json:"perfect_weeks"`
	PerfectMonths         int `json:"perfect_months"`
}

type Level struct {
	Level           int     `json:"level"`
	Title           string  `json:"title"`
	NextLevelPoints *int    `json:"next_level_points"`
	PointsToNext    int     `json:"points_to_next"`
	ProgressToNext  float64 `json:"progress_to_next"`
}

type AchievementRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Points      int     `json:"points"`
	Unlocked    bool    `json:"unlocked"`
	Progress    float64 `json:"progress"`
}

type AchievementSummary struct {
	Unlocked   []AchievementRecord `json:"unlocked"`
	InProgress []AchievementRecord `json:"in_progress"`
}

type HabitProgress struct {
	Habit          HabitDescriptor `json:"habit"`
	Streak         StreakResult    `json:"streak"`
	Growth         Growth          `json:"growth"`
	TotalCompleted int             `json:"total_completed"`
	TrackedDays    int             `json:"tracked_days"`
	SuccessRate    int             `json:"success_rate"`
	CompletedToday bool            `json:"completed_today"`
}

// Progress is the full derived view of a profile for one day.
type Progress struct {
	Date               DateKey             `json:"date"`
	OverallStreak      int                 `json:"overall_streak"`
	Garden             StreakResult        `json:"garden"`
	Growth             Growth              `json:"growth"`
	Stats              UserStats           `json:"stats"`
	Points             int                 `json:"points"`
	Level              Level               `json:"level"`
	RecentAchievements []AchievementRecord `json:"recent_achievements"`
	NextAchievements   []AchievementRecord `json:"next_achievements"`
	Achievements       AchievementSummary  `json:"achievements"`
	Habits             []HabitProgress     `json:"habits"`
	ComputedAt         time.Time           `json:"computed_at"`
}
