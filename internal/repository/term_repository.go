package repository

import (
	"jirepedia_backend/internal/model"

	"gorm.io/gorm"
)

type TermRepository struct {
	DB *gorm.DB
}

func NewTermRepository(db *gorm.DB) *TermRepository {
	return &TermRepository{DB: db}
}

func (r *TermRepository) Create(term *model.Term) error {
	return r.DB.Create(term).Error
}

func (r *TermRepository) FindByID(id uint) (*model.Term, error) {
	var term model.Term
	err := r.DB.First(&term, id).Error
	return &term, err
}

func (r *TermRepository) FindByWord(word string) (*model.Term, error) {
	var term model.Term
	err := r.DB.Where("word = ?", word).First(&term).Error
	return &term, err
}

func (r *TermRepository) List(category string, page, limit int) ([]model.Term, int64, error) {
	var terms []model.Term
	var total int64

	query := r.DB.Model(&model.Term{}).Where("status = ?", model.TermApproved)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&terms).Error
	return terms, total, err
}

// IncrementCounters 在给定事务内原子自增统计计数，避免并发丢失更新
func (r *TermRepository) IncrementCounters(tx *gorm.DB, termID uint, success bool) error {
	updates := map[string]interface{}{
		"total_attempts": gorm.Expr("total_attempts + ?", 1),
	}
	if success {
		updates["total_success"] = gorm.Expr("total_success + ?", 1)
	}
	return tx.Model(&model.Term{}).
		Where("id = ?", termID).
		Updates(updates).Error
}

func (r *TermRepository) Trending(limit int) ([]model.Term, error) {
	var terms []model.Term
	err := r.DB.Where("status = ?", model.TermApproved).
		Order("total_success DESC, total_attempts DESC").
		Limit(limit).
		Find(&terms).Error
	return terms, err
}

func (r *TermRepository) CountExcludingCategory(category string) (int64, error) {
	var count int64
	query := r.DB.Model(&model.Term{}).Where("status = ?", model.TermApproved)
	if category != "" {
		query = query.Where("category <> ?", category)
	}
	err := query.Count(&count).Error
	return count, err
}

// FindNthExcludingCategory 按偏移取一条，用于每日挑战的随机选题
func (r *TermRepository) FindNthExcludingCategory(category string, offset int) (*model.Term, error) {
	var term model.Term
	query := r.DB.Where("status = ?", model.TermApproved)
	if category != "" {
		query = query.Where("category <> ?", category)
	}
	err := query.Order("id").Offset(offset).First(&term).Error
	return &term, err
}
