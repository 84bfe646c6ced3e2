package growth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		streak int
		want   domain.GrowthStage
	}{
		{-3, domain.StageEmpty},
		{0, domain.StageEmpty},
		{1, domain.StageSeed},
		{2, domain.StageSeed},
		{3, domain.StageSprout},
		{6, domain.StageSprout},
		{7, domain.StageSapling},
		{13, domain.StageSapling},
		{14, domain.StageTree},
		{21, domain.StageMatureTree},
		{29, domain.StageMatureTree},
		{30, domain.StageFloweringTree},
		{50, domain.StageFruitTree},
		{99, domain.StageFruitTree},
		{100, domain.StageAncientTree},
		{5000, domain.StageAncientTree},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.streak), "streak %d", tt.streak)
	}
}

func TestClassify_Monotonic(t *testing.T) {
	rank := make(map[domain.GrowthStage]int)
	for i, s := range Stages() {
		rank[s] = i
	}

	prev := rank[Classify(0)]
	for s := 1; s <= 150; s++ {
		r := rank[Classify(s)]
		assert.GreaterOrEqual(t, r, prev, "stage went backwards at streak %d", s)
		prev = r
	}
}

func TestClassify_BoundaryBelongsToHigherStage(t *testing.T) {
	for _, stage := range Stages() {
		lo := MinStreak(stage)
		assert.Equal(t, stage, Classify(lo), "streak %d", lo)
	}
}

func TestDescribe(t *testing.T) {
	t.Run("Success: intermediate stage points to the next one", func(t *testing.T) {
		info := Describe(domain.StageSprout)
		assert.Equal(t, "Sprout", info.Name)
		assert.Equal(t, 3, info.MinStreak)
		require.NotNil(t, info.MaxStreak)
		assert.Equal(t, 6, *info.MaxStreak)
		require.NotNil(t, info.NextStage)
		assert.Equal(t, domain.StageSapling, *info.NextStage)
		assert.Equal(t, "Maintain 7-day streak", info.Requirement)
	})

	t.Run("Success: empty plot asks for the first completion", func(t *testing.T) {
		info := Describe(domain.StageEmpty)
		assert.Equal(t, "Complete 1 habit", info.Requirement)
	})

	t.Run("Edge Case: terminal stage has no next stage", func(t *testing.T) {
		info := Describe(domain.StageAncientTree)
		assert.Nil(t, info.NextStage)
		assert.Nil(t, info.MaxStreak)
		assert.Equal(t, "Habit master!", info.Requirement)
	})

	t.Run("Edge Case: unknown stage falls back to empty", func(t *testing.T) {
		info := Describe("blossom")
		assert.Equal(t, domain.StageEmpty, info.Stage)
	})
}

func TestProgressToNext(t *testing.T) {
	assert.InDelta(t, 0.0, ProgressToNext(0), 1e-9)
	assert.InDelta(t, 0.5, ProgressToNext(2), 1e-9)  // seed [1,3)
	assert.InDelta(t, 0.0, ProgressToNext(7), 1e-9)  // sapling starts
	assert.InDelta(t, 0.5, ProgressToNext(75), 1e-9) // fruit tree [50,100)
	assert.InDelta(t, 1.0, ProgressToNext(100), 1e-9)
	assert.InDelta(t, 1.0, ProgressToNext(365), 1e-9)
	assert.InDelta(t, 0.0, ProgressToNext(-4), 1e-9)
}

func TestForStreak_EmptyScenario(t *testing.T) {
	g := ForStreak(0)
	assert.Equal(t, domain.StageEmpty, g.Stage)
	assert.Equal(t, "Empty Plot", g.Info.Name)
}

func TestJourney(t *testing.T) {
	steps := Journey(14)
	require.Len(t, steps, len(Stages()))

	var current []domain.GrowthStage
	unlocked := 0
	for _, s := range steps {
		if s.Current {
			current = append(current, s.Stage)
		}
		if s.Unlocked {
			unlocked++
		}
	}
	assert.Equal(t, []domain.GrowthStage{domain.StageTree}, current)
	assert.Equal(t, 5, unlocked)
}

func TestCongrats(t *testing.T) {
	assert.Equal(t, "🎉 You planted your first seed! 1-day streak!", Congrats(domain.StageSeed, 1))
	assert.Equal(t, "Great job! 0-day streak!", Congrats(domain.StageEmpty, 0))
	assert.Contains(t, Congrats(domain.StageAncientTree, 120), "120")
}
