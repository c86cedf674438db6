package model

import "time"

// BadgeCondition 徽章解锁条件的标识，具体判定逻辑在 service 层的谓词表里
type BadgeCondition string

const (
	CondFirstPlay         BadgeCondition = "first_play"
	CondStreak3           BadgeCondition = "3_day_streak"
	CondAttempts10        BadgeCondition = "10_attempts"
	CondSuccess50         BadgeCondition = "50_success"
	CondHardSuccess10     BadgeCondition = "10_hard_success"
	CondSuccess100        BadgeCondition = "100_success"
	CondLikesGiven10      BadgeCondition = "10_likes_given"
	CondComments10        BadgeCondition = "10_comments"
	CondLikesReceived50   BadgeCondition = "50_likes_received"
	CondImprovements5     BadgeCondition = "5_improvements_approved"
	CondStreak30          BadgeCondition = "30_day_streak"
	CondDailyChallenges30 BadgeCondition = "30_daily_challenges"
	CondAllCategories     BadgeCondition = "all_categories"
	CondLevel50           BadgeCondition = "level_50"
)

// Badge 徽章目录，近似静态配置，启动时播种
// swagger:model Badge
type Badge struct {
	BaseModel
	Name      string         `gorm:"size:100;unique;not null" json:"name"`
	Category  string         `gorm:"size:50" json:"category"`
	Condition BadgeCondition `gorm:"size:50;not null" json:"condition"`
	Rarity    string         `gorm:"size:20;default:'common'" json:"rarity"`
	Icon      string         `gorm:"size:255" json:"icon"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge 用户与徽章的关联，(用户,徽章)至多一条，授予幂等
// swagger:model UserBadge
type UserBadge struct {
	BaseModel
	UserID   uint       `gorm:"not null;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeID  uint       `gorm:"not null;uniqueIndex:idx_user_badge" json:"badgeId"`
	EarnedAt *time.Time `json:"earnedAt"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
