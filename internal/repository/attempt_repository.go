package repository

import (
	"jirepedia_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create 在给定事务内写入挑战记录，记录创建后不可变
func (r *AttemptRepository) Create(tx *gorm.DB, attempt *model.Attempt) error {
	return tx.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.DB.Preload("Term").First(&attempt, id).Error
	return &attempt, err
}

func (r *AttemptRepository) ListByUser(userID uint, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Term").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) CountSuccessByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("user_id = ? AND success = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) CountSuccessByUserAndDifficulty(userID uint, difficulty model.Difficulty) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("user_id = ? AND success = ? AND difficulty = ?", userID, true, difficulty).
		Count(&count).Error
	return count, err
}

// CountDistinctSuccessCategories 成功过的用語分属多少个カテゴリ
func (r *AttemptRepository) CountDistinctSuccessCategories(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Joins("JOIN terms ON terms.id = attempts.term_id").
		Where("attempts.user_id = ? AND attempts.success = ?", userID, true).
		Distinct("terms.category").
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) ListRecentByTerm(termID uint, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("term_id = ? AND success = ?", termID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
