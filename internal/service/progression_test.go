package service

import (
	"testing"

	"jirepedia_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCalculateXP(t *testing.T) {
	tests := []struct {
		name       string
		difficulty model.Difficulty
		confidence int
		want       int
	}{
		{"easy no bonus at threshold", model.DifficultyEasy, 80, 10},
		{"easy below threshold", model.DifficultyEasy, 50, 10},
		{"easy with bonus floors fraction", model.DifficultyEasy, 95, 17}, // 10 + 7.5 → 17
		{"normal with bonus", model.DifficultyNormal, 90, 25},
		{"hard max confidence", model.DifficultyHard, 100, 40},
		{"normal just above threshold", model.DifficultyNormal, 81, 20}, // 20 + 0.5 → 20
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateXP(tt.difficulty, tt.confidence))
		})
	}
}

func TestRequiredXP(t *testing.T) {
	assert.Equal(t, 100, RequiredXP(1))
	assert.Equal(t, 200, RequiredXP(2))
	assert.Equal(t, 5000, RequiredXP(50))
}

func TestApplyXP(t *testing.T) {
	t.Run("no level up", func(t *testing.T) {
		result := ApplyXP(50, 1, 30)
		assert.False(t, result.LeveledUp)
		assert.Equal(t, 1, result.NewLevel)
		assert.Equal(t, 80, result.RemainingXP)
	})

	t.Run("level up carries remainder", func(t *testing.T) {
		result := ApplyXP(180, 2, 70)
		assert.True(t, result.LeveledUp)
		assert.Equal(t, 3, result.NewLevel)
		assert.Equal(t, 50, result.RemainingXP)
	})

	t.Run("exact threshold levels up with zero remainder", func(t *testing.T) {
		result := ApplyXP(90, 1, 10)
		assert.True(t, result.LeveledUp)
		assert.Equal(t, 2, result.NewLevel)
		assert.Equal(t, 0, result.RemainingXP)
	})
}

func TestRankFromLevel(t *testing.T) {
	tests := []struct {
		level int
		want  model.UserRank
	}{
		{1, model.RankBronze},
		{4, model.RankBronze},
		{5, model.RankSilver},
		{14, model.RankSilver},
		{15, model.RankGold},
		{29, model.RankGold},
		{30, model.RankPlatinum},
		{49, model.RankPlatinum},
		{50, model.RankDiamond},
		{99, model.RankDiamond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RankFromLevel(tt.level), "level %d", tt.level)
	}
}
