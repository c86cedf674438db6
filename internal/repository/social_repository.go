package repository

import (
	"jirepedia_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialRepository struct {
	DB *gorm.DB
}

func NewSocialRepository(db *gorm.DB) *SocialRepository {
	return &SocialRepository{DB: db}
}

// ToggleLike 点赞开关：已点过则取消，返回操作后是否处于点赞状态
func (r *SocialRepository) ToggleLike(userID, entryID uint) (bool, error) {
	var existing model.Like
	err := r.DB.Where("user_id = ? AND entry_id = ?", userID, entryID).First(&existing).Error
	if err == nil {
		if err := r.DB.Unscoped().Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	result := r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Like{UserID: userID, EntryID: entryID})
	if result.Error != nil {
		return false, result.Error
	}
	return true, nil
}

func (r *SocialRepository) CountLikesByEntry(entryID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Like{}).Where("entry_id = ?", entryID).Count(&count).Error
	return count, err
}

func (r *SocialRepository) CountLikesGiven(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountLikesReceived 用户名下所有条目收到的点赞总数
func (r *SocialRepository) CountLikesReceived(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Like{}).
		Joins("JOIN entries ON entries.id = likes.entry_id").
		Where("entries.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *SocialRepository) CreateComment(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *SocialRepository) ListCommentsByEntry(entryID uint, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Where("entry_id = ?", entryID).
		Order("created_at DESC").
		Limit(limit).
		Preload("User").
		Find(&comments).Error
	return comments, err
}

func (r *SocialRepository) CountCommentsByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Comment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *SocialRepository) CreateImprovement(improvement *model.Improvement) error {
	return r.DB.Create(improvement).Error
}

func (r *SocialRepository) FindImprovementByID(id uint) (*model.Improvement, error) {
	var improvement model.Improvement
	err := r.DB.First(&improvement, id).Error
	return &improvement, err
}

func (r *SocialRepository) UpdateImprovementStatus(id uint, status model.ImprovementStatus) error {
	return r.DB.Model(&model.Improvement{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *SocialRepository) CountApprovedImprovements(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Improvement{}).
		Where("user_id = ? AND status = ?", userID, model.ImprovementApproved).
		Count(&count).Error
	return count, err
}
