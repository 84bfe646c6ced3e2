// Package growth maps a current streak onto the garden's growth stages.
package growth

import (
	"fmt"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

type stageDef struct {
	stage       domain.GrowthStage
	min         int
	name        string
	emoji       string
	description string
	color       string
	bgColor     string
	message     string
	congrats    string
}

// stages is ordered by ascending minimum streak. Each range is [min, next.min),
// the last one is unbounded.
var stages = []stageDef{
	{
		stage: domain.StageEmpty, min: 0,
		name: "Empty Plot", emoji: "🕳️", description: "Start your habit journey!",
		color: "#9ca3af", bgColor: "#f3f4f6",
		message: "Plant your first seed by completing a habit!",
	},
	{
		stage: domain.StageSeed, min: 1,
		name: "Seed", emoji: "🌱", description: "A small beginning",
		color: "#22c55e", bgColor: "#dcfce7",
		message:  "Great start! Keep going to see growth!",
		congrats: "🎉 You planted your first seed! %d-day streak!",
	},
	{
		stage: domain.StageSprout, min: 3,
		name: "Sprout", emoji: "🌿", description: "Growing strong",
		color: "#16a34a", bgColor: "#bbf7d0",
		message:  "Your habits are taking root!",
		congrats: "🌱 Your habits are sprouting! %d-day streak!",
	},
	{
		stage: domain.StageSapling, min: 7,
		name: "Sapling", emoji: "🪴", description: "A full week of care",
		color: "#15803d", bgColor: "#bbf7d0",
		message:  "One week in. The roots are holding!",
		congrats: "🪴 A whole week! Your sapling stands tall. %d-day streak!",
	},
	{
		stage: domain.StageTree, min: 14,
		name: "Tree", emoji: "🌳", description: "Well established",
		color: "#166534", bgColor: "#86efac",
		message:  "Excellent consistency! You're thriving!",
		congrats: "🌳 You've grown into a strong tree! %d-day streak!",
	},
	{
		stage: domain.StageMatureTree, min: 21,
		name: "Mature Tree", emoji: "🌲", description: "Deep roots, wide branches",
		color: "#14532d", bgColor: "#86efac",
		message:  "Three weeks strong. This is who you are now!",
		congrats: "🌲 Your tree has matured! %d-day streak!",
	},
	{
		stage: domain.StageFloweringTree, min: 30,
		name: "Flowering Tree", emoji: "🌸", description: "Full bloom",
		color: "#ec4899", bgColor: "#fce7f3",
		message:  "Amazing! Your habits are in full bloom!",
		congrats: "🌸 Magnificent! Your habits are in full bloom! %d-day streak!",
	},
	{
		stage: domain.StageFruitTree, min: 50,
		name: "Fruit Tree", emoji: "🍎", description: "Bearing fruit",
		color: "#dc2626", bgColor: "#fee2e2",
		message:  "Your effort is paying off. Enjoy the harvest!",
		congrats: "🍎 Your tree is bearing fruit! %d-day streak!",
	},
	{
		stage: domain.StageAncientTree, min: 100,
		name: "Ancient Tree", emoji: "🌴", description: "A living legend",
		color: "#a16207", bgColor: "#fef9c3",
		message:  "Incredible! You've mastered your habits!",
		congrats: "🌴 Legendary! An ancient tree after %d days!",
	},
}

func indexOf(stage domain.GrowthStage) int {
	for i, s := range stages {
		if s.stage == stage {
			return i
		}
	}
	return -1
}

func indexFor(streak int) int {
	idx := 0
	for i, s := range stages {
		if streak >= s.min {
			idx = i
		}
	}
	return idx
}

// Classify returns the stage whose range contains streak. Negative values are
// treated as zero.
func Classify(streak int) domain.GrowthStage {
	return stages[indexFor(streak)].stage
}

// Stages returns every stage in ascending order.
func Stages() []domain.GrowthStage {
	out := make([]domain.GrowthStage, len(stages))
	for i, s := range stages {
		out[i] = s.stage
	}
	return out
}

// MinStreak returns the first streak length of the stage, 0 for unknown stages.
func MinStreak(stage domain.GrowthStage) int {
	if i := indexOf(stage); i >= 0 {
		return stages[i].min
	}
	return 0
}

// Describe returns the display metadata of a stage. Unknown stages describe
// the empty plot.
func Describe(stage domain.GrowthStage) domain.StageInfo {
	i := indexOf(stage)
	if i < 0 {
		i = 0
	}
	s := stages[i]

	info := domain.StageInfo{
		Stage:       s.stage,
		Name:        s.name,
		Emoji:       s.emoji,
		Description: s.description,
		Color:       s.color,
		BgColor:     s.bgColor,
		Message:     s.message,
		MinStreak:   s.min,
		Requirement: "Habit master!",
	}

	if i+1 < len(stages) {
		next := stages[i+1]
		maxStreak := next.min - 1
		nextStage := next.stage
		info.MaxStreak = &maxStreak
		info.NextStage = &nextStage
		info.Requirement = requirement(next.min)
	}
	return info
}

func requirement(days int) string {
	if days == 1 {
		return "Complete 1 habit"
	}
	return fmt.Sprintf("Maintain %d-day streak", days)
}

// ProgressToNext reports how far streak is through its current stage, in [0,1].
// The terminal stage always reports 1.
func ProgressToNext(streak int) float64 {
	i := indexFor(streak)
	if i+1 >= len(stages) {
		return 1
	}
	lo, hi := stages[i].min, stages[i+1].min
	p := float64(streak-lo) / float64(hi-lo)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// ForStreak bundles classification, metadata and progress.
func ForStreak(streak int) domain.Growth {
	stage := Classify(streak)
	return domain.Growth{
		Stage:          stage,
		Info:           Describe(stage),
		ProgressToNext: ProgressToNext(streak),
	}
}

// Journey lists every stage with its unlocked and current flags.
func Journey(streak int) []domain.JourneyStep {
	streak = max(streak, 0)
	current := Classify(streak)
	steps := make([]domain.JourneyStep, 0, len(stages))
	for _, s := range stages {
		steps = append(steps, domain.JourneyStep{
			Stage:     s.stage,
			Name:      s.name,
			Emoji:     s.emoji,
			MinStreak: s.min,
			Unlocked:  streak >= s.min,
			Current:   s.stage == current,
		})
	}
	return steps
}

// Congrats is the message shown when a completion moves the streak forward.
func Congrats(stage domain.GrowthStage, streak int) string {
	if i := indexOf(stage); i >= 0 && stages[i].congrats != "" {
		return fmt.Sprintf(stages[i].congrats, streak)
	}
	return fmt.Sprintf("Great job! %d-day streak!", streak)
}
