package repository

import (
	"time"

	"jirepedia_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindAll() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Find(&badges).Error
	return badges, err
}

// FindEarnedIDs 用户已持有的徽章ID集合
func (r *BadgeRepository) FindEarnedIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, err
	}

	earned := make(map[uint]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

// Award 授予徽章。(user_id,badge_id) 唯一索引加 DO NOTHING，
// 并发重复授予会被静默吞掉而不是报错
func (r *BadgeRepository) Award(userID, badgeID uint) (bool, error) {
	now := time.Now()
	result := r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserBadge{
			UserID:   userID,
			BadgeID:  badgeID,
			EarnedAt: &now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *BadgeRepository) ListByUser(userID uint) ([]model.UserBadge, error) {
	var userBadges []model.UserBadge
	err := r.DB.Where("user_id = ?", userID).
		Preload("Badge").
		Order("created_at DESC").
		Find(&userBadges).Error
	return userBadges, err
}
