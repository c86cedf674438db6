package service

import (
	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/internal/util"
	"jirepedia_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommunityService 点赞、评论、改善提案等社区互动
type CommunityService struct {
	SocialRepo   *repository.SocialRepository
	EntryRepo    *repository.EntryRepository
	Notification *NotificationService
	Badge        *BadgeService
}

func NewCommunityService(
	socialRepo *repository.SocialRepository,
	entryRepo *repository.EntryRepository,
	notification *NotificationService,
	badge *BadgeService,
) *CommunityService {
	return &CommunityService{
		SocialRepo:   socialRepo,
		EntryRepo:    entryRepo,
		Notification: notification,
		Badge:        badge,
	}
}

type LikeResult struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

func (s *CommunityService) ToggleLike(userID, entryID uint) (*LikeResult, error) {
	entry, err := s.EntryRepo.FindByID(entryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrEntryNotFound
		}
		return nil, err
	}

	liked, err := s.SocialRepo.ToggleLike(userID, entryID)
	if err != nil {
		return nil, err
	}

	count, err := s.SocialRepo.CountLikesByEntry(entryID)
	if err != nil {
		return nil, err
	}

	if liked && entry.UserID != userID {
		s.Notification.Notify(entry.UserID, "entry_liked",
			"いいねされました",
			"あなたの解説にいいねがつきました",
			"/dictionary")
	}

	s.evaluateBadges(userID)
	if liked {
		s.evaluateBadges(entry.UserID)
	}

	return &LikeResult{Liked: liked, Count: count}, nil
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

func (s *CommunityService) CreateComment(userID, entryID uint, req CommentRequest) (*model.Comment, error) {
	entry, err := s.EntryRepo.FindByID(entryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrEntryNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		UserID:  userID,
		EntryID: entryID,
		Content: req.Content,
	}
	if err := s.SocialRepo.CreateComment(comment); err != nil {
		return nil, err
	}

	if entry.UserID != userID {
		s.Notification.Notify(entry.UserID, "entry_commented",
			"コメントがつきました",
			"あなたの解説にコメントがつきました",
			"/dictionary")
	}
	s.evaluateBadges(userID)

	return comment, nil
}

func (s *CommunityService) ListComments(entryID uint, limit int) ([]model.Comment, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.SocialRepo.ListCommentsByEntry(entryID, limit)
}

type ImprovementRequest struct {
	Explanation string `json:"explanation" binding:"required,min=10"`
}

// ProposeImprovement 对他人条目提出改善案，等待所有者审核
func (s *CommunityService) ProposeImprovement(userID, entryID uint, req ImprovementRequest) (*model.Improvement, error) {
	entry, err := s.EntryRepo.FindByID(entryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrEntryNotFound
		}
		return nil, err
	}
	if entry.UserID == userID {
		return nil, util.ErrPermissionDenied
	}

	improvement := &model.Improvement{
		UserID:      userID,
		EntryID:     entryID,
		Explanation: req.Explanation,
	}
	if err := s.SocialRepo.CreateImprovement(improvement); err != nil {
		return nil, err
	}

	s.Notification.Notify(entry.UserID, "improvement_proposed",
		"改善案が届きました",
		"あなたの解説に改善案が提案されました",
		"/dictionary")

	return improvement, nil
}

// ReviewImprovement 条目所有者审核改善案。通过时提案者可能解锁徽章
func (s *CommunityService) ReviewImprovement(ownerID, improvementID uint, approve bool) (*model.Improvement, error) {
	improvement, err := s.SocialRepo.FindImprovementByID(improvementID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrImprovementNotFound
		}
		return nil, err
	}

	entry, err := s.EntryRepo.FindByID(improvement.EntryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != ownerID {
		return nil, util.ErrPermissionDenied
	}

	status := model.ImprovementRejected
	if approve {
		status = model.ImprovementApproved
	}
	if err := s.SocialRepo.UpdateImprovementStatus(improvementID, status); err != nil {
		return nil, err
	}
	improvement.Status = status

	if approve {
		s.Notification.Notify(improvement.UserID, "improvement_approved",
			"改善案が採用されました",
			"あなたの改善案が採用されました！",
			"/dictionary")
		s.evaluateBadges(improvement.UserID)
	}

	return improvement, nil
}

func (s *CommunityService) evaluateBadges(userID uint) {
	go func() {
		if _, err := s.Badge.Evaluate(userID); err != nil {
			logger.Log.Error("badge evaluation failed after community action",
				zap.Uint("userID", userID),
				zap.Error(err))
		}
	}()
}
