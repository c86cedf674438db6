package model

import "time"

// Entry 用户对某个用語的最佳说明，每个(用户,用語)至多一条，
// 重复投稿原地更新并递增版本号。每个用語至多一条 IsCrown=true
// swagger:model Entry
type Entry struct {
	BaseModel
	UserID         uint       `gorm:"not null;uniqueIndex:idx_entry_user_term" json:"userId"`
	TermID         uint       `gorm:"not null;uniqueIndex:idx_entry_user_term;index" json:"termId"`
	Explanation    string     `gorm:"type:text;not null" json:"explanation"`
	Difficulty     Difficulty `gorm:"size:10;not null" json:"difficulty"`
	Confidence     int        `gorm:"default:0" json:"confidence"`
	IsCrown        bool       `gorm:"default:false;index" json:"isCrown"`
	CrownStartDate *time.Time `json:"crownStartDate"`
	Version        int        `gorm:"default:1" json:"version"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Term Term `gorm:"foreignKey:TermID" json:"term,omitempty"`
}

func (Entry) TableName() string {
	return "entries"
}
