package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/internal/util"
	"jirepedia_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	trendingCacheKey = "terms:trending"
	trendingCacheTTL = 5 * time.Minute
)

type TermService struct {
	TermRepo    *repository.TermRepository
	EntryRepo   *repository.EntryRepository
	AttemptRepo *repository.AttemptRepository
	Redis       *redis.Client
}

func NewTermService(
	termRepo *repository.TermRepository,
	entryRepo *repository.EntryRepository,
	attemptRepo *repository.AttemptRepository,
	rdb *redis.Client,
) *TermService {
	return &TermService{
		TermRepo:    termRepo,
		EntryRepo:   entryRepo,
		AttemptRepo: attemptRepo,
		Redis:       rdb,
	}
}

type TermRequest struct {
	Word        string           `json:"word" binding:"required"`
	Reading     string           `json:"reading" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Subcategory string           `json:"subcategory"`
	OfficialDef string           `json:"officialDef" binding:"required"`
	NGWords     []string         `json:"ngWords" binding:"required,min=1"`
	Difficulty  model.Difficulty `json:"difficulty"`
}

// Submit 用户投稿新用語。読み方存成标签用于检索，投稿即公开
func (s *TermService) Submit(creatorID *uint, req TermRequest) (*model.Term, error) {
	if _, err := s.TermRepo.FindByWord(req.Word); err == nil {
		return nil, util.ErrTermAlreadyExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyNormal
	}

	ngWords := make([]string, 0, len(req.NGWords))
	for _, w := range req.NGWords {
		if trimmed := strings.TrimSpace(w); trimmed != "" {
			ngWords = append(ngWords, trimmed)
		}
	}

	term := &model.Term{
		Word:        req.Word,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		OfficialDef: req.OfficialDef,
		NGWords:     ngWords,
		Tags:        []string{req.Reading},
		Difficulty:  difficulty,
		Status:      model.TermApproved,
		CreatorID:   creatorID,
	}
	if err := s.TermRepo.Create(term); err != nil {
		return nil, err
	}
	return term, nil
}

type TermDetail struct {
	Term           *model.Term     `json:"term"`
	CrownEntry     *model.Entry    `json:"crownEntry,omitempty"`
	Entries        []model.Entry   `json:"entries"`
	RecentAttempts []model.Attempt `json:"recentAttempts"`
}

func (s *TermService) GetDetail(termID uint) (*TermDetail, error) {
	term, err := s.TermRepo.FindByID(termID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTermNotFound
		}
		return nil, err
	}

	detail := &TermDetail{Term: term}

	if crown, err := s.EntryRepo.FindCrownByTerm(s.EntryRepo.DB, termID); err == nil {
		detail.CrownEntry = crown
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if detail.Entries, err = s.EntryRepo.ListByTerm(termID, 20); err != nil {
		return nil, err
	}
	if detail.RecentAttempts, err = s.AttemptRepo.ListRecentByTerm(termID, 10); err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *TermService) List(category string, page, limit int) ([]model.Term, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.TermRepo.List(category, page, limit)
}

// Trending 人气用語。读多写少，redis缓存5分钟
func (s *TermService) Trending(ctx context.Context, limit int) ([]model.Term, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, trendingCacheKey).Result(); err == nil {
			var terms []model.Term
			if err := json.Unmarshal([]byte(cached), &terms); err == nil {
				return terms, nil
			}
		}
	}

	terms, err := s.TermRepo.Trending(limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(terms); err == nil {
			if err := s.Redis.Set(ctx, trendingCacheKey, data, trendingCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache trending terms", zap.Error(err))
			}
		}
	}

	return terms, nil
}
