package service

import (
	"fmt"

	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/pkg/logger"

	"go.uber.org/zap"
)

// BadgeStats 徽章判定用的用户统计快照，一次加载多次判定
type BadgeStats struct {
	TotalAttempts        int64
	TotalSuccess         int64
	HardSuccess          int64
	LikesGiven           int64
	LikesReceived        int64
	Comments             int64
	ApprovedImprovements int64
	DailyChallenges      int64
	SuccessCategories    int64
	Streak               int
	Level                int
}

// 条件标识到谓词的映射。新增徽章只需加目录数据和一行谓词，
// 判定逻辑不用动
var badgePredicates = map[model.BadgeCondition]func(*BadgeStats) bool{
	model.CondFirstPlay:         func(s *BadgeStats) bool { return s.TotalAttempts >= 1 },
	model.CondStreak3:           func(s *BadgeStats) bool { return s.Streak >= 3 },
	model.CondAttempts10:        func(s *BadgeStats) bool { return s.TotalAttempts >= 10 },
	model.CondSuccess50:         func(s *BadgeStats) bool { return s.TotalSuccess >= 50 },
	model.CondHardSuccess10:     func(s *BadgeStats) bool { return s.HardSuccess >= 10 },
	model.CondSuccess100:        func(s *BadgeStats) bool { return s.TotalSuccess >= 100 },
	model.CondLikesGiven10:      func(s *BadgeStats) bool { return s.LikesGiven >= 10 },
	model.CondComments10:        func(s *BadgeStats) bool { return s.Comments >= 10 },
	model.CondLikesReceived50:   func(s *BadgeStats) bool { return s.LikesReceived >= 50 },
	model.CondImprovements5:     func(s *BadgeStats) bool { return s.ApprovedImprovements >= 5 },
	model.CondStreak30:          func(s *BadgeStats) bool { return s.Streak >= 30 },
	model.CondDailyChallenges30: func(s *BadgeStats) bool { return s.DailyChallenges >= 30 },
	model.CondAllCategories:     func(s *BadgeStats) bool { return s.SuccessCategories >= 3 },
	model.CondLevel50:           func(s *BadgeStats) bool { return s.Level >= 50 },
}

type BadgeService struct {
	BadgeRepo     *repository.BadgeRepository
	UserRepo      *repository.UserRepository
	AttemptRepo   *repository.AttemptRepository
	SocialRepo    *repository.SocialRepository
	ChallengeRepo *repository.DailyChallengeRepository
	Notification  *NotificationService
}

func NewBadgeService(
	badgeRepo *repository.BadgeRepository,
	userRepo *repository.UserRepository,
	attemptRepo *repository.AttemptRepository,
	socialRepo *repository.SocialRepository,
	challengeRepo *repository.DailyChallengeRepository,
	notification *NotificationService,
) *BadgeService {
	return &BadgeService{
		BadgeRepo:     badgeRepo,
		UserRepo:      userRepo,
		AttemptRepo:   attemptRepo,
		SocialRepo:    socialRepo,
		ChallengeRepo: challengeRepo,
		Notification:  notification,
	}
}

func (s *BadgeService) loadStats(userID uint) (*BadgeStats, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	stats := &BadgeStats{
		Streak: user.Streak,
		Level:  user.Level,
	}

	if stats.TotalAttempts, err = s.AttemptRepo.CountByUser(userID); err != nil {
		return nil, err
	}
	if stats.TotalSuccess, err = s.AttemptRepo.CountSuccessByUser(userID); err != nil {
		return nil, err
	}
	if stats.HardSuccess, err = s.AttemptRepo.CountSuccessByUserAndDifficulty(userID, model.DifficultyHard); err != nil {
		return nil, err
	}
	if stats.LikesGiven, err = s.SocialRepo.CountLikesGiven(userID); err != nil {
		return nil, err
	}
	if stats.LikesReceived, err = s.SocialRepo.CountLikesReceived(userID); err != nil {
		return nil, err
	}
	if stats.Comments, err = s.SocialRepo.CountCommentsByUser(userID); err != nil {
		return nil, err
	}
	if stats.ApprovedImprovements, err = s.SocialRepo.CountApprovedImprovements(userID); err != nil {
		return nil, err
	}
	if stats.DailyChallenges, err = s.ChallengeRepo.CountCompletedByUser(userID); err != nil {
		return nil, err
	}
	if stats.SuccessCategories, err = s.AttemptRepo.CountDistinctSuccessCategories(userID); err != nil {
		return nil, err
	}

	return stats, nil
}

// Evaluate 扫描未持有的徽章并授予满足条件的，返回新获得的徽章。
// 幂等：重复调用不会重复授予，任何进度事件之后都可以放心触发
func (s *BadgeService) Evaluate(userID uint) ([]model.Badge, error) {
	stats, err := s.loadStats(userID)
	if err != nil {
		return nil, err
	}

	badges, err := s.BadgeRepo.FindAll()
	if err != nil {
		return nil, err
	}

	earned, err := s.BadgeRepo.FindEarnedIDs(userID)
	if err != nil {
		return nil, err
	}

	var newlyEarned []model.Badge
	for _, badge := range badges {
		if earned[badge.ID] {
			continue
		}

		predicate, ok := badgePredicates[badge.Condition]
		if !ok {
			logger.Log.Warn("badge with unknown condition",
				zap.Uint("badgeID", badge.ID),
				zap.String("condition", string(badge.Condition)))
			continue
		}
		if !predicate(stats) {
			continue
		}

		// 唯一索引兜底，并发下同一徽章只会授予一次
		awarded, err := s.BadgeRepo.Award(userID, badge.ID)
		if err != nil {
			return newlyEarned, err
		}
		if !awarded {
			continue
		}

		newlyEarned = append(newlyEarned, badge)
		s.Notification.Notify(userID, "badge_earned",
			"バッジを獲得しました！",
			fmt.Sprintf("「%s」バッジを獲得しました！", badge.Name),
			"/profile")
	}

	return newlyEarned, nil
}

func (s *BadgeService) ListUserBadges(userID uint) ([]model.UserBadge, error) {
	return s.BadgeRepo.ListByUser(userID)
}

func (s *BadgeService) Catalog() ([]model.Badge, error) {
	return s.BadgeRepo.FindAll()
}
