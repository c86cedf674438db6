package repository

import (
	"time"

	"jirepedia_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyChallengeRepository struct {
	DB *gorm.DB
}

func NewDailyChallengeRepository(db *gorm.DB) *DailyChallengeRepository {
	return &DailyChallengeRepository{DB: db}
}

func (r *DailyChallengeRepository) FindByDate(date time.Time) (*model.DailyChallenge, error) {
	var challenge model.DailyChallenge
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	err := r.DB.Where("date >= ? AND date < ?", startOfDay, endOfDay).
		Preload("Term").
		First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindLatest 最近一次挑战，用于カテゴリローテーション
func (r *DailyChallengeRepository) FindLatest() (*model.DailyChallenge, error) {
	var challenge model.DailyChallenge
	err := r.DB.Order("date DESC").Preload("Term").First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *DailyChallengeRepository) Create(challenge *model.DailyChallenge) error {
	return r.DB.Create(challenge).Error
}

// Complete 记录用户完成挑战，重复完成走 DO NOTHING
func (r *DailyChallengeRepository) Complete(userID, challengeID uint) error {
	now := time.Now()
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserChallenge{
			UserID:      userID,
			ChallengeID: challengeID,
			Completed:   true,
			CompletedAt: &now,
		}).Error
}

func (r *DailyChallengeRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserChallenge{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *DailyChallengeRepository) HasCompleted(userID, challengeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ? AND completed = ?", userID, challengeID, true).
		Count(&count).Error
	return count > 0, err
}
