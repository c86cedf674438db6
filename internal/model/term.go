package model

// Difficulty 挑战难度，同时决定AI判定使用的模型档位
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyNormal Difficulty = "NORMAL"
	DifficultyHard   Difficulty = "HARD"
)

type TermStatus string

const (
	TermPending  TermStatus = "PENDING"
	TermApproved TermStatus = "APPROVED"
)

// Term 题目用語。NGWords 为说明中禁止出现的词（大小写不敏感的子串匹配）
// swagger:model Term
type Term struct {
	BaseModel
	Word          string     `gorm:"size:100;unique;not null" json:"word"`
	Category      string     `gorm:"size:50;index;not null" json:"category"`
	Subcategory   string     `gorm:"size:50" json:"subcategory"`
	OfficialDef   string     `gorm:"type:text;not null" json:"officialDef"`
	NGWords       []string   `gorm:"serializer:json" json:"ngWords"`
	Tags          []string   `gorm:"serializer:json" json:"tags"`
	Difficulty    Difficulty `gorm:"size:10;default:'NORMAL'" json:"difficulty"`
	Status        TermStatus `gorm:"size:10;default:'APPROVED'" json:"status"`
	TotalAttempts int        `gorm:"default:0" json:"totalAttempts"` // 只通过原子自增更新
	TotalSuccess  int        `gorm:"default:0" json:"totalSuccess"`
	CreatorID     *uint      `gorm:"index" json:"creatorId"`
}

func (Term) TableName() string {
	return "terms"
}
