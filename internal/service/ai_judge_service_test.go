package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jirepedia_backend/internal/config"
	"jirepedia_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubAIServer(t *testing.T, handler func(req ChatCompletionRequest) (string, int)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		content, status := handler(req)
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(content))
			return
		}
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []struct {
				Message AIChatMessage `json:"message"`
			}{
				{Message: AIChatMessage{Role: "assistant", Content: content}},
			},
		})
	}))
}

func testAIConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		BaseURL:       baseURL,
		APIKey:        "test-key",
		EasyModel:     "easy-model",
		NormalModel:   "normal-model",
		HardModel:     "hard-model",
		FairnessModel: "fairness-model",
	}
}

func TestAIJudgeServiceModelFor(t *testing.T) {
	svc := NewAIJudgeService(testAIConfig(""))

	assert.Equal(t, "easy-model", svc.ModelFor(model.DifficultyEasy))
	assert.Equal(t, "normal-model", svc.ModelFor(model.DifficultyNormal))
	assert.Equal(t, "hard-model", svc.ModelFor(model.DifficultyHard))
}

func TestAIJudgeServiceJudge(t *testing.T) {
	t.Run("parses judgement response", func(t *testing.T) {
		server := newStubAIServer(t, func(req ChatCompletionRequest) (string, int) {
			assert.Equal(t, "hard-model", req.Model)
			return `{"guess": "光合成", "confidence": 85, "reasoning": "栄養生成の説明だから"}`, http.StatusOK
		})
		defer server.Close()

		svc := NewAIJudgeService(testAIConfig(server.URL))
		result, err := svc.Judge(context.Background(), "緑の生き物が太陽で栄養を作る", model.DifficultyHard)
		require.NoError(t, err)
		assert.Equal(t, "光合成", result.Guess)
		assert.Equal(t, 85, result.Confidence)
		assert.Equal(t, "栄養生成の説明だから", result.Reasoning)
	})

	t.Run("extracts json surrounded by text", func(t *testing.T) {
		server := newStubAIServer(t, func(req ChatCompletionRequest) (string, int) {
			return "回答です:\n```json\n{\"guess\": \"重力\", \"confidence\": 70, \"reasoning\": \"引き合う力\"}\n```", http.StatusOK
		})
		defer server.Close()

		svc := NewAIJudgeService(testAIConfig(server.URL))
		result, err := svc.Judge(context.Background(), "物が下に落ちる原因", model.DifficultyNormal)
		require.NoError(t, err)
		assert.Equal(t, "重力", result.Guess)
	})

	t.Run("clamps out-of-range confidence", func(t *testing.T) {
		server := newStubAIServer(t, func(req ChatCompletionRequest) (string, int) {
			return `{"guess": "円周率", "confidence": 150, "reasoning": "明らか"}`, http.StatusOK
		})
		defer server.Close()

		svc := NewAIJudgeService(testAIConfig(server.URL))
		result, err := svc.Judge(context.Background(), "円の周と直径の比", model.DifficultyEasy)
		require.NoError(t, err)
		assert.Equal(t, 100, result.Confidence)
	})

	t.Run("rejects response without json", func(t *testing.T) {
		server := newStubAIServer(t, func(req ChatCompletionRequest) (string, int) {
			return "わかりません", http.StatusOK
		})
		defer server.Close()

		svc := NewAIJudgeService(testAIConfig(server.URL))
		_, err := svc.Judge(context.Background(), "説明", model.DifficultyEasy)
		assert.Error(t, err)
	})

	t.Run("rejects response missing guess", func(t *testing.T) {
		server := newStubAIServer(t, func(req ChatCompletionRequest) (string, int) {
			return `{"confidence": 50, "reasoning": "不明"}`, http.StatusOK
		})
		defer server.Close()

		svc := NewAIJudgeService(testAIConfig(server.URL))
		_, err := svc.Judge(context.Background(), "説明", model.DifficultyEasy)
		assert.Error(t, err)
	})

	t.Run("propagates api error status", func(t *testing.T) {
		server := newStubAIServer(t, func(req ChatCompletionRequest) (string, int) {
			return `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests
		})
		defer server.Close()

		svc := NewAIJudgeService(testAIConfig(server.URL))
		_, err := svc.Judge(context.Background(), "説明", model.DifficultyEasy)
		assert.Error(t, err)
	})
}

func TestAIJudgeServiceCheckFairness(t *testing.T) {
	t.Run("flags leaked answer", func(t *testing.T) {
		server := newStubAIServer(t, func(req ChatCompletionRequest) (string, int) {
			assert.Equal(t, "fairness-model", req.Model)
			return `{"isNG": true, "reason": "英訳をそのまま使っている"}`, http.StatusOK
		})
		defer server.Close()

		svc := NewAIJudgeService(testAIConfig(server.URL))
		result, err := svc.CheckFairness(context.Background(), "photosynthesisのこと", "光合成")
		require.NoError(t, err)
		assert.True(t, result.IsNG)
		assert.NotEmpty(t, result.Reason)
	})

	t.Run("passes fair explanation", func(t *testing.T) {
		server := newStubAIServer(t, func(req ChatCompletionRequest) (string, int) {
			return `{"isNG": false, "reason": "問題なし"}`, http.StatusOK
		})
		defer server.Close()

		svc := NewAIJudgeService(testAIConfig(server.URL))
		result, err := svc.CheckFairness(context.Background(), "緑の生き物が栄養を作る仕組み", "光合成")
		require.NoError(t, err)
		assert.False(t, result.IsNG)
	})
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0, clampConfidence(-5))
	assert.Equal(t, 0, clampConfidence(0))
	assert.Equal(t, 55, clampConfidence(55))
	assert.Equal(t, 100, clampConfidence(100))
	assert.Equal(t, 100, clampConfidence(999))
}
