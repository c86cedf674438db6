package service

import (
	"context"
	"errors"
	"testing"

	"jirepedia_backend/internal/config"
	"jirepedia_backend/internal/model"
	"jirepedia_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubJudge 固定返回的判定stub，隔离外部AI依赖
type stubJudge struct {
	guess       string
	confidence  int
	judgeErr    error
	fairnessNG  bool
	fairnessErr error
}

func (s *stubJudge) ModelFor(difficulty model.Difficulty) string {
	return "stub-model"
}

func (s *stubJudge) Judge(ctx context.Context, explanation string, difficulty model.Difficulty) (*JudgementResult, error) {
	if s.judgeErr != nil {
		return nil, s.judgeErr
	}
	return &JudgementResult{
		Guess:      s.guess,
		Confidence: s.confidence,
		Reasoning:  "テスト用の理由",
	}, nil
}

func (s *stubJudge) CheckFairness(ctx context.Context, explanation, word string) (*FairnessResult, error) {
	if s.fairnessErr != nil {
		return nil, s.fairnessErr
	}
	if s.fairnessNG {
		return &FairnessResult{IsNG: true, Reason: "言い換えで答えを含んでいる"}, nil
	}
	return &FairnessResult{IsNG: false}, nil
}

func newJudgementService(env *testEnv, judge AIJudge, aiCfg config.AIConfig) *JudgementService {
	return NewJudgementService(env.termRepo, env.attemptRepo, env.userRepo, judge, env.badge, env.challenge, env.db, aiCfg)
}

const validExplanation = "緑色の生き物が太陽の力を使って自分の栄養を作り出す仕組みのこと"

func TestJudgementSubmitSuccess(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", []string{"光合成", "植物", "光"})

	svc := newJudgementService(env, &stubJudge{guess: "光合成", confidence: 90}, config.AIConfig{})

	resp, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: validExplanation,
		Difficulty:  model.DifficultyNormal,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 90, resp.Confidence)
	assert.Equal(t, "光合成", resp.AIGuess)
	assert.Equal(t, 25, resp.XPEarned) // 20 + (90-80)*0.5
	assert.NotZero(t, resp.AttemptID)

	// 経験値が反映される
	updated, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.XP)
	assert.Equal(t, 1, updated.Level)

	// 挑戦記録と用語統計
	attempt, err := env.attemptRepo.FindByID(resp.AttemptID)
	require.NoError(t, err)
	assert.True(t, attempt.Success)
	assert.Equal(t, 25, attempt.XPEarned)
	assert.Equal(t, "stub-model", attempt.AIModel)

	updatedTerm, err := env.termRepo.FindByID(term.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updatedTerm.TotalAttempts)
	assert.Equal(t, 1, updatedTerm.TotalSuccess)
}

func TestJudgementSubmitGuessMatchIsCaseAndSpaceInsensitive(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "DNA", "理科", []string{"DNA"})

	svc := newJudgementService(env, &stubJudge{guess: " dna ", confidence: 75}, config.AIConfig{})

	resp, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: "遺伝の情報を記録している、二重らせんの形をした物質",
		Difficulty:  model.DifficultyEasy,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 10, resp.XPEarned)
}

func TestJudgementSubmitWrongGuess(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", []string{"光合成"})

	svc := newJudgementService(env, &stubJudge{guess: "呼吸", confidence: 60}, config.AIConfig{})

	resp, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: validExplanation,
		Difficulty:  model.DifficultyNormal,
	})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Zero(t, resp.XPEarned)
	assert.NotZero(t, resp.AttemptID) // 失敗した挑戦も記録される

	updated, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.XP)

	updatedTerm, err := env.termRepo.FindByID(term.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updatedTerm.TotalAttempts)
	assert.Zero(t, updatedTerm.TotalSuccess)
}

func TestJudgementSubmitLevelUp(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	user.XP = 90
	require.NoError(t, env.userRepo.Update(user))
	term := env.createTerm(t, "光合成", "理科", nil)

	svc := newJudgementService(env, &stubJudge{guess: "光合成", confidence: 90}, config.AIConfig{})

	resp, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: validExplanation,
		Difficulty:  model.DifficultyNormal,
	})
	require.NoError(t, err)

	assert.True(t, resp.LeveledUp)
	assert.Equal(t, 2, resp.NewLevel)

	updated, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, 15, updated.XP) // 90 + 25 - 100
	assert.Equal(t, model.RankBronze, updated.Rank)
}

func TestJudgementSubmitExplanationTooShort(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", nil)

	svc := newJudgementService(env, &stubJudge{guess: "光合成", confidence: 90}, config.AIConfig{})

	_, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: "  短い  ",
		Difficulty:  model.DifficultyEasy,
	})
	assert.ErrorIs(t, err, util.ErrExplanationTooShort)
}

func TestJudgementSubmitTermNotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	svc := newJudgementService(env, &stubJudge{guess: "光合成", confidence: 90}, config.AIConfig{})

	_, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      9999,
		Explanation: validExplanation,
		Difficulty:  model.DifficultyEasy,
	})
	assert.ErrorIs(t, err, util.ErrTermNotFound)
}

func TestJudgementSubmitNGWordRejection(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", []string{"光合成", "植物", "光"})

	svc := newJudgementService(env, &stubJudge{guess: "光合成", confidence: 90}, config.AIConfig{})

	_, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: "植物が栄養を自分で作るための、とても重要な仕組み",
		Difficulty:  model.DifficultyNormal,
	})

	var rejection *PipelineRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "ng_word", rejection.Stage)
	assert.Contains(t, rejection.Message, "植物")

	// 拒絶時は何も記録されない
	count, err := env.attemptRepo.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestJudgementSubmitFairnessRejection(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", nil)

	svc := newJudgementService(env, &stubJudge{guess: "光合成", confidence: 90, fairnessNG: true}, config.AIConfig{})

	_, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: validExplanation,
		Difficulty:  model.DifficultyNormal,
	})

	var rejection *PipelineRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "fairness", rejection.Stage)
}

func TestJudgementSubmitFairnessFailOpen(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", nil)

	judge := &stubJudge{guess: "光合成", confidence: 90, fairnessErr: errors.New("timeout")}
	svc := newJudgementService(env, judge, config.AIConfig{})

	// 公平性チェックが落ちてもデフォルトでは判定に進む
	resp, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: validExplanation,
		Difficulty:  model.DifficultyNormal,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestJudgementSubmitFairnessFailClosed(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", nil)

	judge := &stubJudge{guess: "光合成", confidence: 90, fairnessErr: errors.New("timeout")}
	svc := newJudgementService(env, judge, config.AIConfig{FairnessFailClosed: true})

	_, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: validExplanation,
		Difficulty:  model.DifficultyNormal,
	})
	assert.ErrorIs(t, err, util.ErrJudgementFailed)
}

func TestJudgementSubmitJudgeFailureLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	term := env.createTerm(t, "光合成", "理科", nil)

	svc := newJudgementService(env, &stubJudge{judgeErr: errors.New("model unavailable")}, config.AIConfig{})

	_, err := svc.Submit(context.Background(), user.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: validExplanation,
		Difficulty:  model.DifficultyNormal,
	})
	assert.ErrorIs(t, err, util.ErrJudgementFailed)

	// 判定失敗時は挑戦記録・経験値・統計のいずれも変化しない
	count, err := env.attemptRepo.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	updated, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.XP)

	updatedTerm, err := env.termRepo.FindByID(term.ID)
	require.NoError(t, err)
	assert.Zero(t, updatedTerm.TotalAttempts)
}

func TestGetAttemptOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	term := env.createTerm(t, "光合成", "理科", nil)

	svc := newJudgementService(env, &stubJudge{guess: "光合成", confidence: 90}, config.AIConfig{})

	resp, err := svc.Submit(context.Background(), alice.ID, JudgeRequest{
		TermID:      term.ID,
		Explanation: validExplanation,
		Difficulty:  model.DifficultyNormal,
	})
	require.NoError(t, err)

	attempt, err := svc.GetAttempt(alice.ID, resp.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, resp.AttemptID, attempt.ID)

	_, err = svc.GetAttempt(bob.ID, resp.AttemptID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.GetAttempt(alice.ID, 9999)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}
