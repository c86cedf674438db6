package service

import (
	"time"

	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/internal/util"

	"gorm.io/gorm"
)

// EntryService 辞書エントリー的投稿与王冠仲裁
type EntryService struct {
	EntryRepo    *repository.EntryRepository
	AttemptRepo  *repository.AttemptRepository
	TermRepo     *repository.TermRepository
	Notification *NotificationService
	DB           *gorm.DB
}

func NewEntryService(
	entryRepo *repository.EntryRepository,
	attemptRepo *repository.AttemptRepository,
	termRepo *repository.TermRepository,
	notification *NotificationService,
	db *gorm.DB,
) *EntryService {
	return &EntryService{
		EntryRepo:    entryRepo,
		AttemptRepo:  attemptRepo,
		TermRepo:     termRepo,
		Notification: notification,
		DB:           db,
	}
}

// CreateFromAttempt 把成功的挑战转为辞書エントリー并仲裁王冠。
// 同一用户对同一用語只有一条エントリー，重复投稿原地更新。
//
// 王冠规则：无冠或新确信度严格大于现任时转移；同分现任保留
// （先到先得），自己刷新自己的记录也一样。整个读改写在事务内
// 并对用語行加锁，保证并发提交不会出现零冠或双冠
func (s *EntryService) CreateFromAttempt(userID, attemptID uint) (*model.Entry, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}

	if attempt.UserID == nil || *attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if !attempt.Success {
		return nil, util.ErrAttemptNotSuccess
	}

	var entry *model.Entry
	var dethronedUserID uint

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// 同一用語上的王冠竞争必须串行化
		if err := s.EntryRepo.LockTerm(tx, attempt.TermID); err != nil {
			return err
		}

		existing, err := s.EntryRepo.FindByUserAndTerm(tx, userID, attempt.TermID)
		switch err {
		case nil:
			if err := s.EntryRepo.UpdateContent(tx, existing.ID, attempt.Explanation, attempt.Difficulty, attempt.Confidence); err != nil {
				return err
			}
			existing.Explanation = attempt.Explanation
			existing.Difficulty = attempt.Difficulty
			existing.Confidence = attempt.Confidence
			existing.Version++
			entry = existing
		case gorm.ErrRecordNotFound:
			entry = &model.Entry{
				UserID:      userID,
				TermID:      attempt.TermID,
				Explanation: attempt.Explanation,
				Difficulty:  attempt.Difficulty,
				Confidence:  attempt.Confidence,
			}
			if err := s.EntryRepo.Create(tx, entry); err != nil {
				return err
			}
		default:
			return err
		}

		crown, err := s.EntryRepo.FindCrownByTerm(tx, attempt.TermID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		hasCrown := err == nil
		if hasCrown && crown.ID == entry.ID {
			// 现任就是自己，更新内容后王冠原样保留
			return nil
		}
		if hasCrown && entry.Confidence <= crown.Confidence {
			return nil
		}

		// 转移：清旧设新在同一事务里完成，原子交换
		now := time.Now()
		if hasCrown {
			if err := s.EntryRepo.ClearCrown(tx, crown.ID); err != nil {
				return err
			}
			dethronedUserID = crown.UserID
		}
		if err := s.EntryRepo.SetCrown(tx, entry.ID, now); err != nil {
			return err
		}
		entry.IsCrown = true
		entry.CrownStartDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if dethronedUserID != 0 && dethronedUserID != userID {
		term, err := s.TermRepo.FindByID(attempt.TermID)
		if err == nil {
			s.Notification.Notify(dethronedUserID, "crown_lost",
				"クラウンが奪われました",
				"「"+term.Word+"」のクラウンが他のユーザーに移りました",
				"/dictionary")
		}
	}

	return entry, nil
}

func (s *EntryService) GetByID(entryID uint) (*model.Entry, error) {
	entry, err := s.EntryRepo.FindByID(entryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *EntryService) ListByUser(userID uint) ([]model.Entry, error) {
	return s.EntryRepo.ListByUser(userID)
}
