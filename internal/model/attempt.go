package model

// Attempt 一次判定流水线执行的不可变记录，创建后不再修改
// swagger:model Attempt
type Attempt struct {
	BaseModel
	UserID      *uint      `gorm:"index" json:"userId"` // 可空，游客挑战不落库用户
	TermID      uint       `gorm:"index;not null" json:"termId"`
	Difficulty  Difficulty `gorm:"size:10;not null" json:"difficulty"`
	AIModel     string     `gorm:"size:100" json:"aiModel"`
	Explanation string     `gorm:"type:text;not null" json:"explanation"`
	Success     bool       `gorm:"default:false" json:"success"`
	Confidence  int        `gorm:"default:0" json:"confidence"` // 0-100
	AIGuess     string     `gorm:"size:255" json:"aiGuess"`
	AIComment   string     `gorm:"type:text" json:"aiComment"`
	XPEarned    int        `gorm:"default:0" json:"xpEarned"` // 失败时恒为0

	Term Term `gorm:"foreignKey:TermID" json:"term,omitempty"`
}

func (Attempt) TableName() string {
	return "attempts"
}
