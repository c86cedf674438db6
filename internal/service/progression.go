package service

import (
	"jirepedia_backend/internal/model"
)

// 难度基础经验值
var baseXP = map[model.Difficulty]int{
	model.DifficultyEasy:   10,
	model.DifficultyNormal: 20,
	model.DifficultyHard:   30,
}

const xpPerLevel = 100 // 每级所需经验 = 等级 × 100

// CalculateXP 成功判定的经验值。确信度超过80时每1点加0.5，整体向下取整
func CalculateXP(difficulty model.Difficulty, confidence int) int {
	base := baseXP[difficulty]

	bonus := 0.0
	if confidence > 80 {
		bonus = float64(confidence-80) * 0.5
	}
	return int(float64(base) + bonus)
}

// RequiredXP 当前等级升到下一级所需经验
func RequiredXP(level int) int {
	return level * xpPerLevel
}

type LevelUpResult struct {
	LeveledUp   bool `json:"leveledUp"`
	NewLevel    int  `json:"newLevel"`
	RemainingXP int  `json:"remainingXp"`
}

// ApplyXP 累加经验并判断升级。一次调用至多升一级；
// 单次奖励上限远低于升两级的阈值，跨级场景由调用方循环处理
func ApplyXP(currentXP, currentLevel, earnedXP int) LevelUpResult {
	total := currentXP + earnedXP
	required := RequiredXP(currentLevel)

	if total >= required {
		return LevelUpResult{
			LeveledUp:   true,
			NewLevel:    currentLevel + 1,
			RemainingXP: total - required,
		}
	}

	return LevelUpResult{
		LeveledUp:   false,
		NewLevel:    currentLevel,
		RemainingXP: total,
	}
}

// RankFromLevel 等级到段位的阶梯映射，高段位优先
func RankFromLevel(level int) model.UserRank {
	switch {
	case level >= 50:
		return model.RankDiamond
	case level >= 30:
		return model.RankPlatinum
	case level >= 15:
		return model.RankGold
	case level >= 5:
		return model.RankSilver
	default:
		return model.RankBronze
	}
}
