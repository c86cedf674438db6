package repository

import (
	"time"

	"jirepedia_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntryRepository struct {
	DB *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{DB: db}
}

func (r *EntryRepository) Create(tx *gorm.DB, entry *model.Entry) error {
	return tx.Create(entry).Error
}

func (r *EntryRepository) FindByID(id uint) (*model.Entry, error) {
	var entry model.Entry
	err := r.DB.Preload("User").Preload("Term").First(&entry, id).Error
	return &entry, err
}

func (r *EntryRepository) FindByUserAndTerm(tx *gorm.DB, userID, termID uint) (*model.Entry, error) {
	var entry model.Entry
	err := tx.Where("user_id = ? AND term_id = ?", userID, termID).First(&entry).Error
	return &entry, err
}

// LockTerm 对用語行加排他锁，串行化同一用語上的王冠读改写。
// 必须在事务内调用，锁随事务提交释放
func (r *EntryRepository) LockTerm(tx *gorm.DB, termID uint) error {
	var term model.Term
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&term, termID).Error
}

func (r *EntryRepository) FindCrownByTerm(tx *gorm.DB, termID uint) (*model.Entry, error) {
	var entry model.Entry
	err := tx.Where("term_id = ? AND is_crown = ?", termID, true).First(&entry).Error
	return &entry, err
}

// UpdateContent 原地更新已有条目并递增版本号，不产生第二条记录
func (r *EntryRepository) UpdateContent(tx *gorm.DB, entryID uint, explanation string, difficulty model.Difficulty, confidence int) error {
	return tx.Model(&model.Entry{}).
		Where("id = ?", entryID).
		Updates(map[string]interface{}{
			"explanation": explanation,
			"difficulty":  difficulty,
			"confidence":  confidence,
			"version":     gorm.Expr("version + ?", 1),
		}).Error
}

func (r *EntryRepository) ClearCrown(tx *gorm.DB, entryID uint) error {
	return tx.Model(&model.Entry{}).
		Where("id = ?", entryID).
		Update("is_crown", false).Error
}

func (r *EntryRepository) SetCrown(tx *gorm.DB, entryID uint, at time.Time) error {
	return tx.Model(&model.Entry{}).
		Where("id = ?", entryID).
		Updates(map[string]interface{}{
			"is_crown":         true,
			"crown_start_date": at,
		}).Error
}

func (r *EntryRepository) ListByTerm(termID uint, limit int) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.DB.Where("term_id = ?", termID).
		Order("is_crown DESC, confidence DESC").
		Limit(limit).
		Preload("User").
		Find(&entries).Error
	return entries, err
}

func (r *EntryRepository) ListByUser(userID uint) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Preload("Term").
		Find(&entries).Error
	return entries, err
}
