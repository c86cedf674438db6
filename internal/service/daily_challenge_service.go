package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/internal/util"
	"jirepedia_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DailyChallengeService struct {
	ChallengeRepo *repository.DailyChallengeRepository
	TermRepo      *repository.TermRepository
	Redis         *redis.Client
}

func NewDailyChallengeService(
	challengeRepo *repository.DailyChallengeRepository,
	termRepo *repository.TermRepository,
	rdb *redis.Client,
) *DailyChallengeService {
	return &DailyChallengeService{
		ChallengeRepo: challengeRepo,
		TermRepo:      termRepo,
		Redis:         rdb,
	}
}

type DailyChallengeView struct {
	Challenge *model.DailyChallenge `json:"challenge"`
	Completed bool                  `json:"completed"`
}

// GetToday 取当天的挑战，没有就现场生成一条。
// お題本体按日期缓存到当天结束；完成状态因人而异不进缓存
func (s *DailyChallengeService) GetToday(userID uint) (*DailyChallengeView, error) {
	today := time.Now()

	challenge := s.cachedChallenge(today)
	if challenge == nil {
		var err error
		challenge, err = s.ChallengeRepo.FindByDate(today)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return nil, err
			}
			challenge, err = s.createForDate(today)
			if err != nil {
				return nil, err
			}
		}
		s.cacheChallenge(today, challenge)
	}

	view := &DailyChallengeView{Challenge: challenge}
	if userID != 0 {
		completed, err := s.ChallengeRepo.HasCompleted(userID, challenge.ID)
		if err != nil {
			return nil, err
		}
		view.Completed = completed
	}
	return view, nil
}

func challengeCacheKey(date time.Time) string {
	return "challenge:daily:" + date.Format("2006-01-02")
}

func (s *DailyChallengeService) cachedChallenge(date time.Time) *model.DailyChallenge {
	if s.Redis == nil {
		return nil
	}
	data, err := s.Redis.Get(context.Background(), challengeCacheKey(date)).Bytes()
	if err != nil {
		return nil
	}
	var challenge model.DailyChallenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil
	}
	return &challenge
}

func (s *DailyChallengeService) cacheChallenge(date time.Time, challenge *model.DailyChallenge) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(challenge)
	if err != nil {
		return
	}
	endOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).Add(24 * time.Hour)
	ttl := time.Until(endOfDay)
	if ttl <= 0 {
		return
	}
	if err := s.Redis.Set(context.Background(), challengeCacheKey(date), data, ttl).Err(); err != nil {
		logger.Log.Warn("failed to cache daily challenge", zap.Error(err))
	}
}

// createForDate 选题规则：避开上一次的カテゴリ做轮换；
// 难度按星期浮动，月曜やさしめ、週末はむずかしめ
func (s *DailyChallengeService) createForDate(date time.Time) (*model.DailyChallenge, error) {
	lastCategory := ""
	if last, err := s.ChallengeRepo.FindLatest(); err == nil {
		lastCategory = last.Term.Category
	}

	difficulty := model.DifficultyNormal
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		difficulty = model.DifficultyHard
	case time.Monday:
		difficulty = model.DifficultyEasy
	default:
		difficulties := []model.Difficulty{model.DifficultyEasy, model.DifficultyNormal, model.DifficultyHard}
		difficulty = difficulties[rand.Intn(len(difficulties))]
	}

	term, err := s.pickTerm(lastCategory)
	if err != nil {
		return nil, err
	}

	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	challenge := &model.DailyChallenge{
		TermID:     term.ID,
		Date:       startOfDay,
		Difficulty: difficulty,
	}
	if err := s.ChallengeRepo.Create(challenge); err != nil {
		// 并发双写时日期唯一索引会挡掉一个，读回落库的那条
		if existing, findErr := s.ChallengeRepo.FindByDate(date); findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	challenge.Term = *term

	return challenge, nil
}

func (s *DailyChallengeService) pickTerm(excludeCategory string) (*model.Term, error) {
	count, err := s.TermRepo.CountExcludingCategory(excludeCategory)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return s.TermRepo.FindNthExcludingCategory(excludeCategory, rand.Intn(int(count)))
	}

	// 候补不足（或首次）时不限カテゴリ
	total, err := s.TermRepo.CountExcludingCategory("")
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, util.ErrChallengeNotFound
	}
	return s.TermRepo.FindNthExcludingCategory("", rand.Intn(int(total)))
}

// CompleteIfToday 成功挑战的用語恰好是今日のお題时记完成。
// 判定流水线成功后旁路调用，失败只记日志
func (s *DailyChallengeService) CompleteIfToday(userID, termID uint) {
	challenge, err := s.ChallengeRepo.FindByDate(time.Now())
	if err != nil {
		return
	}
	if challenge.TermID != termID {
		return
	}

	if err := s.ChallengeRepo.Complete(userID, challenge.ID); err != nil {
		logger.Log.Error("failed to record daily challenge completion",
			zap.Uint("userID", userID),
			zap.Uint("challengeID", challenge.ID),
			zap.Error(err))
	}
}
