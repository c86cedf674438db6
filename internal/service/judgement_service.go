package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jirepedia_backend/internal/config"
	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/repository"
	"jirepedia_backend/internal/util"
	"jirepedia_backend/pkg/logger"
	"jirepedia_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PipelineRejection 流水线阶段性拒绝（NGワード、公平性）。
// 带具体原因原样返回给用户，修改后可直接重新提交
type PipelineRejection struct {
	Stage   string
	Message string
}

func (e *PipelineRejection) Error() string {
	return e.Message
}

type JudgeRequest struct {
	TermID      uint             `json:"termId" binding:"required"`
	Explanation string           `json:"explanation" binding:"required"`
	Difficulty  model.Difficulty `json:"difficulty" binding:"required,oneof=EASY NORMAL HARD"`
}

type JudgeResponse struct {
	AttemptID  uint   `json:"attemptId"`
	Success    bool   `json:"success"`
	Confidence int    `json:"confidence"`
	AIGuess    string `json:"aiGuess"`
	AIComment  string `json:"aiComment"`
	XPEarned   int    `json:"xpEarned"`
	LeveledUp  bool   `json:"leveledUp"`
	NewLevel   int    `json:"newLevel"`
	NewRank    string `json:"newRank"`
}

// JudgementService 提交判定的编排：NGワード → 公平性 → AI判定 → 经验结算。
// 任一阶段拒绝则不落任何数据；成功路径的写入在单个事务内完成
type JudgementService struct {
	TermRepo    *repository.TermRepository
	AttemptRepo *repository.AttemptRepository
	UserRepo    *repository.UserRepository
	Judge       AIJudge
	Badge       *BadgeService
	Challenge   *DailyChallengeService
	DB          *gorm.DB
	aiCfg       config.AIConfig
}

func NewJudgementService(
	termRepo *repository.TermRepository,
	attemptRepo *repository.AttemptRepository,
	userRepo *repository.UserRepository,
	judge AIJudge,
	badge *BadgeService,
	challenge *DailyChallengeService,
	db *gorm.DB,
	aiCfg config.AIConfig,
) *JudgementService {
	return &JudgementService{
		TermRepo:    termRepo,
		AttemptRepo: attemptRepo,
		UserRepo:    userRepo,
		Judge:       judge,
		Badge:       badge,
		Challenge:   challenge,
		DB:          db,
		aiCfg:       aiCfg,
	}
}

// Submit 执行一次完整的判定流水线
func (s *JudgementService) Submit(ctx context.Context, userID uint, req JudgeRequest) (*JudgeResponse, error) {
	if len([]rune(strings.TrimSpace(req.Explanation))) < 10 {
		return nil, util.ErrExplanationTooShort
	}

	term, err := s.TermRepo.FindByID(req.TermID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTermNotFound
		}
		return nil, err
	}

	// 阶段1: NGワード子串扫描
	if found := CheckNGWords(req.Explanation, term.NGWords); len(found) > 0 {
		monitoring.JudgementRejections.WithLabelValues("ng_word").Inc()
		return nil, &PipelineRejection{
			Stage:   "ng_word",
			Message: fmt.Sprintf("NGワードが含まれています: %s", strings.Join(found, ", ")),
		}
	}

	// 阶段2: AI公平性检查。子串过滤抓不到言い換え层面的泄露，
	// 交给语义模型判断。服务异常时默认放行（可配置为拒绝）
	fairness, err := s.Judge.CheckFairness(ctx, req.Explanation, term.Word)
	if err != nil {
		if s.aiCfg.FairnessFailClosed {
			logger.Log.Error("fairness check failed, rejecting per policy", zap.Error(err))
			return nil, util.ErrJudgementFailed
		}
		logger.Log.Warn("fairness check unavailable, passing submission", zap.Error(err))
	} else if fairness.IsNG {
		monitoring.JudgementRejections.WithLabelValues("fairness").Inc()
		return nil, &PipelineRejection{
			Stage:   "fairness",
			Message: fmt.Sprintf("説明が不適切です: %s", fairness.Reason),
		}
	}

	// 阶段3: AI判定。解析失败不重试，不落库，由用户重新提交
	aiModel := s.Judge.ModelFor(req.Difficulty)
	judgeStart := time.Now()
	result, err := s.Judge.Judge(ctx, req.Explanation, req.Difficulty)
	monitoring.JudgementDuration.WithLabelValues(aiModel).Observe(time.Since(judgeStart).Seconds())
	if err != nil {
		logger.Log.Error("AI judgement failed", zap.String("model", aiModel), zap.Error(err))
		monitoring.JudgementRejections.WithLabelValues("judge_error").Inc()
		return nil, util.ErrJudgementFailed
	}

	// 成功与否由我们自己比对：大小写折叠+去空白后全等
	success := normalizeWord(result.Guess) == normalizeWord(term.Word)

	xpEarned := 0
	if success {
		xpEarned = CalculateXP(req.Difficulty, result.Confidence)
	}

	attempt := &model.Attempt{
		UserID:      &userID,
		TermID:      term.ID,
		Difficulty:  req.Difficulty,
		AIModel:     aiModel,
		Explanation: req.Explanation,
		Success:     success,
		Confidence:  result.Confidence,
		AIGuess:     result.Guess,
		AIComment:   result.Reasoning,
		XPEarned:    xpEarned,
	}

	resp := &JudgeResponse{
		Success:    success,
		Confidence: result.Confidence,
		AIGuess:    result.Guess,
		AIComment:  result.Reasoning,
		XPEarned:   xpEarned,
	}

	// 挑战记录、用户进度、用語统计必须一起提交，
	// 出现「加了经验但没有挑战记录」属于不变量破坏
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.AttemptRepo.Create(tx, attempt); err != nil {
			return err
		}

		if success {
			var user model.User
			if err := tx.First(&user, userID).Error; err != nil {
				return err
			}

			levelUp := ApplyXP(user.XP, user.Level, xpEarned)
			newRank := RankFromLevel(levelUp.NewLevel)
			if err := s.UserRepo.ApplyProgression(tx, userID, levelUp.RemainingXP, levelUp.NewLevel, newRank); err != nil {
				return err
			}

			resp.LeveledUp = levelUp.LeveledUp
			resp.NewLevel = levelUp.NewLevel
			resp.NewRank = string(newRank)
		}

		return s.TermRepo.IncrementCounters(tx, term.ID, success)
	})
	if err != nil {
		return nil, err
	}

	resp.AttemptID = attempt.ID

	if success {
		monitoring.JudgementCounter.WithLabelValues(string(req.Difficulty), "success").Inc()
		// 徽章判定与每日挑战完成是旁路副作用，不阻塞响应
		go func() {
			s.Challenge.CompleteIfToday(userID, term.ID)
			if _, err := s.Badge.Evaluate(userID); err != nil {
				logger.Log.Error("badge evaluation failed", zap.Uint("userID", userID), zap.Error(err))
			}
		}()
	} else {
		monitoring.JudgementCounter.WithLabelValues(string(req.Difficulty), "fail").Inc()
	}

	return resp, nil
}

// GetAttempt 挑战结果页，只允许本人查看
func (s *JudgementService) GetAttempt(userID, attemptID uint) (*model.Attempt, error) {
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
	return attempt, nil
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
