package model

import "time"

// DailyChallenge 每日挑战，每天一条，按日期唯一
type DailyChallenge struct {
	BaseModel
	TermID     uint       `gorm:"not null;index" json:"termId"`
	Date       time.Time  `gorm:"not null;uniqueIndex" json:"date"` // 当天0点
	Difficulty Difficulty `gorm:"size:10;default:'NORMAL'" json:"difficulty"`

	Term Term `gorm:"foreignKey:TermID" json:"term,omitempty"`
}

func (DailyChallenge) TableName() string {
	return "daily_challenges"
}

// UserChallenge 用户完成每日挑战的记录
type UserChallenge struct {
	BaseModel
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_challenge" json:"userId"`
	ChallengeID uint       `gorm:"not null;uniqueIndex:idx_user_challenge" json:"challengeId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (UserChallenge) TableName() string {
	return "user_challenges"
}
