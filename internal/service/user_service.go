package service

import (
	"time"

	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/internal/util"
	"jirepedia_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	AttemptRepo *repository.AttemptRepository
	EntryRepo   *repository.EntryRepository
	CheckinRepo *repository.CheckinRepository
	Badge       *BadgeService
}

func NewUserService(
	userRepo *repository.UserRepository,
	attemptRepo *repository.AttemptRepository,
	entryRepo *repository.EntryRepository,
	checkinRepo *repository.CheckinRepository,
	badge *BadgeService,
) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		AttemptRepo: attemptRepo,
		EntryRepo:   entryRepo,
		CheckinRepo: checkinRepo,
		Badge:       badge,
	}
}

// UpdateStreak 活跃日连击。同一天重复访问不变；
// 昨天活跃过则+1，中断则归1。顺带落一条签到记录
func (s *UserService) UpdateStreak(userID uint) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if user.LastActiveAt != nil {
		last := *user.LastActiveAt
		lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, last.Location())

		switch {
		case lastDay.Equal(today):
			return nil
		case today.Sub(lastDay) == 24*time.Hour:
			user.Streak++
		default:
			user.Streak = 1
		}
	} else {
		user.Streak = 1
	}

	if user.Streak > user.LongestStreak {
		user.LongestStreak = user.Streak
	}
	user.LastActiveAt = &now

	if err := s.UserRepo.Update(user); err != nil {
		return err
	}

	if _, err := s.CheckinRepo.FindByUserAndDate(userID, now); err == gorm.ErrRecordNotFound {
		checkin := &model.Checkin{UserID: userID, CheckinAt: today, StreakDays: user.Streak}
		if err := s.CheckinRepo.Create(checkin); err != nil {
			logger.Log.Warn("failed to record checkin",
				zap.Uint("userID", userID),
				zap.Error(err))
		}
	}

	// 连击类徽章在这里有可能刚好达成
	go func() {
		if _, err := s.Badge.Evaluate(userID); err != nil {
			logger.Log.Error("badge evaluation failed after streak update",
				zap.Uint("userID", userID),
				zap.Error(err))
		}
	}()

	return nil
}

type ProfileView struct {
	User          *model.User       `json:"user"`
	Badges        []model.UserBadge `json:"badges"`
	TotalAttempts int64             `json:"totalAttempts"`
	TotalSuccess  int64             `json:"totalSuccess"`
	EntryCount    int               `json:"entryCount"`
	NextLevelXP   int               `json:"nextLevelXp"`
}

func (s *UserService) GetProfile(userID uint) (*ProfileView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	view := &ProfileView{
		User:        user,
		NextLevelXP: RequiredXP(user.Level),
	}

	if view.Badges, err = s.Badge.ListUserBadges(userID); err != nil {
		return nil, err
	}
	if view.TotalAttempts, err = s.AttemptRepo.CountByUser(userID); err != nil {
		return nil, err
	}
	if view.TotalSuccess, err = s.AttemptRepo.CountSuccessByUser(userID); err != nil {
		return nil, err
	}

	entries, err := s.EntryRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	view.EntryCount = len(entries)

	return view, nil
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
	Bio  string `json:"bio" binding:"max=500"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	user.Name = req.Name
	user.Bio = req.Bio
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Leaderboard(limit int) ([]model.User, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.FindTopByXP(limit)
}

func (s *UserService) ListAttempts(userID uint, limit int) ([]model.Attempt, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.AttemptRepo.ListByUser(userID, limit)
}
