package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"jirepedia_backend/internal/config"
	"jirepedia_backend/internal/model"
)

// JudgementResult AI判定的原始结果。是否答对由调用方比对，不信AI自己的判断
type JudgementResult struct {
	Guess      string `json:"guess"`
	Confidence int    `json:"confidence"` // 0-100，越界值截断
	Reasoning  string `json:"reasoning"`
}

// FairnessResult 公平性检查结果：说明是否变相包含答案本身
type FairnessResult struct {
	IsNG   bool   `json:"isNG"`
	Reason string `json:"reason"`
}

// AIJudge 判定能力的抽象，测试时可替换为固定返回的stub
type AIJudge interface {
	ModelFor(difficulty model.Difficulty) string
	Judge(ctx context.Context, explanation string, difficulty model.Difficulty) (*JudgementResult, error)
	CheckFairness(ctx context.Context, explanation, word string) (*FairnessResult, error)
}

// AIJudgeService 通过 OpenAI 兼容接口实现判定。
// 判定请求只携带说明文，绝不把正解传给模型
type AIJudgeService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIJudgeService(cfg config.AIConfig) *AIJudgeService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AIJudgeService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ModelFor 难度档位到模型的映射：难度越高模型越强
func (s *AIJudgeService) ModelFor(difficulty model.Difficulty) string {
	switch difficulty {
	case model.DifficultyEasy:
		return s.config.EasyModel
	case model.DifficultyHard:
		return s.config.HardModel
	default:
		return s.config.NormalModel
	}
}

func judgementPrompt(explanation string) string {
	return fmt.Sprintf(`あなたは用語推測AIです。以下の説明文が何の用語を説明しているか推測してください。

説明文: %s

以下の形式で回答してください（JSON形式で）:
{
  "guess": "推測した用語名",
  "confidence": 確信度（0-100の数値）,
  "reasoning": "なぜそう推測したかの理由"
}

重要: 回答は必ずJSON形式のみで、説明文や追加のテキストは含めないでください。`, explanation)
}

func fairnessPrompt(explanation, word string) string {
	return fmt.Sprintf(`あなたは出題の公平性を審査するAIです。以下の説明文が、正解の用語「%s」そのものを言い換え・英訳・読み方などで直接含んでいないか判定してください。

説明文: %s

以下に該当する場合は不適切（isNG: true）としてください:
- 正解の用語の同義語・英語訳・外国語訳をそのまま使っている
- 正解の読み方やローマ字表記を使っている
- 辞書の定義文をほぼそのまま書き写している

以下の形式で回答してください（JSON形式で）:
{
  "isNG": trueまたはfalse,
  "reason": "判定理由"
}

重要: 回答は必ずJSON形式のみで、追加のテキストは含めないでください。`, word, explanation)
}

// Judge 调用判定模型猜测用語。响应解析失败即判定失败，不重试
func (s *AIJudgeService) Judge(ctx context.Context, explanation string, difficulty model.Difficulty) (*JudgementResult, error) {
	content, err := s.chat(ctx, s.ModelFor(difficulty), judgementPrompt(explanation))
	if err != nil {
		return nil, err
	}

	var result JudgementResult
	if err := parseJSONBlock(content, &result); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if result.Guess == "" {
		return nil, fmt.Errorf("AI response missing guess")
	}

	result.Confidence = clampConfidence(result.Confidence)
	return &result, nil
}

// CheckFairness 语义层面的NG检查。调用方决定服务异常时放行还是拒绝
func (s *AIJudgeService) CheckFairness(ctx context.Context, explanation, word string) (*FairnessResult, error) {
	content, err := s.chat(ctx, s.config.FairnessModel, fairnessPrompt(explanation, word))
	if err != nil {
		return nil, err
	}

	var result FairnessResult
	if err := parseJSONBlock(content, &result); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return &result, nil
}

func (s *AIJudgeService) chat(ctx context.Context, modelID, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:       modelID,
		Messages:    []AIChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   500,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// parseJSONBlock 模型偶尔会在JSON前后夹带文字，只取第一个大括号块解析
func parseJSONBlock(content string, v interface{}) error {
	block := jsonBlockPattern.FindString(content)
	if block == "" {
		return fmt.Errorf("no JSON object in response")
	}
	return json.Unmarshal([]byte(block), v)
}

func clampConfidence(confidence int) int {
	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}
