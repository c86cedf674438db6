package model

import "time"

// Checkin 记录用户的每日登录签到
// swagger:model Checkin
type Checkin struct {
	BaseModel
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_checkin_date" json:"userId"`
	CheckinAt  time.Time `gorm:"not null;uniqueIndex:idx_user_checkin_date" json:"checkinAt"`
	StreakDays int       `gorm:"default:1" json:"streakDays"` // 签到当时的连续天数
}

func (Checkin) TableName() string {
	return "checkins"
}
