package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/ai-recruiter/internal/config"
	"github.com/fadilmartias/ai-recruiter/internal/ranking"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const rankingTemperature = 0.2

// ChatCompletionService talks to an OpenAI-compatible chat completions
// endpoint. Groq and OpenRouter both speak this protocol.
type ChatCompletionService struct {
	client   *resty.Client
	provider string
	model    string
	log      *zap.Logger
}

func NewChatCompletionService(provider, baseURL, apiKey, model string, log *zap.Logger) *ChatCompletionService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &ChatCompletionService{
		client:   client,
		provider: provider,
		model:    model,
		log:      log.Named(provider),
	}
}

func NewGroqService(cfg *config.GroqConfig, model string, log *zap.Logger) (*ChatCompletionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY not set")
	}
	if model == "" {
		model = cfg.Model
	}
	return NewChatCompletionService(config.ProviderGroq, cfg.BaseURL, cfg.APIKey, model, log), nil
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, model string, log *zap.Logger) (*ChatCompletionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	if model == "" {
		model = cfg.Model
	}
	return NewChatCompletionService(config.ProviderOpenRouter, cfg.BaseURL, cfg.APIKey, model, log), nil
}

func (s *ChatCompletionService) Provider() string { return s.provider }

// Complete sends prompt as a single user message and returns the first
// choice's content. Transport failures and non-2xx statuses wrap
// ranking.ErrUpstream.
func (s *ChatCompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":       s.model,
			"temperature": rankingTemperature,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %s request: %v", ranking.ErrUpstream, s.provider, err)
	}

	if resp.IsError() {
		msg := gjson.GetBytes(resp.Body(), "error.message").String()
		s.log.Warn("chat completion rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("model", s.model),
			zap.String("error", msg))
		return "", fmt.Errorf("%w: %s returned status %d: %s", ranking.ErrUpstream, s.provider, resp.StatusCode(), msg)
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("%w: %s response has no message content", ranking.ErrUpstream, s.provider)
	}
	return content.String(), nil
}
