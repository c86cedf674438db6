package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// 段位按等级阶梯划分，等级越高段位越高
type UserRank string

const (
	RankBronze   UserRank = "Bronze"
	RankSilver   UserRank = "Silver"
	RankGold     UserRank = "Gold"
	RankPlatinum UserRank = "Platinum"
	RankDiamond  UserRank = "Diamond"
)

// swagger:model User
type User struct {
	BaseModel
	Name          string     `gorm:"size:100;not null" json:"name"`
	Email         string     `gorm:"size:100;unique;not null" json:"email"`
	Password      string     `gorm:"size:100;not null" json:"-"`
	Role          UserRole   `gorm:"size:20;default:'user'" json:"role"`
	Avatar        string     `gorm:"size:255" json:"avatar"`
	Bio           string     `gorm:"size:500" json:"bio"`
	XP            int        `gorm:"default:0" json:"xp"`    // 当前等级内的经验值，升级时扣除阈值
	Level         int        `gorm:"default:1" json:"level"` // 等级从1开始
	Rank          UserRank   `gorm:"size:20;default:'Bronze'" json:"rank"`
	Streak        int        `gorm:"default:0" json:"streak"` // 连续登录天数
	LongestStreak int        `gorm:"default:0" json:"longestStreak"`
	LastActiveAt  *time.Time `json:"lastActiveAt"`
	Disabled      bool       `gorm:"default:false" json:"disabled"`
}

func (User) TableName() string {
	return "users"
}
