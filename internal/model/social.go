package model

// Like 对辞書エントリー的点赞，(用户,条目)至多一条
type Like struct {
	BaseModel
	UserID  uint `gorm:"not null;uniqueIndex:idx_like_user_entry" json:"userId"`
	EntryID uint `gorm:"not null;uniqueIndex:idx_like_user_entry;index" json:"entryId"`
}

func (Like) TableName() string {
	return "likes"
}

type Comment struct {
	BaseModel
	UserID  uint   `gorm:"not null;index" json:"userId"`
	EntryID uint   `gorm:"not null;index" json:"entryId"`
	Content string `gorm:"type:text;not null" json:"content"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

type ImprovementStatus string

const (
	ImprovementPending  ImprovementStatus = "pending"
	ImprovementApproved ImprovementStatus = "approved"
	ImprovementRejected ImprovementStatus = "rejected"
)

// Improvement 对他人条目的改善提案，条目所有者审核
type Improvement struct {
	BaseModel
	UserID      uint              `gorm:"not null;index" json:"userId"`
	EntryID     uint              `gorm:"not null;index" json:"entryId"`
	Explanation string            `gorm:"type:text;not null" json:"explanation"`
	Status      ImprovementStatus `gorm:"size:20;default:'pending'" json:"status"`
}

func (Improvement) TableName() string {
	return "improvements"
}
