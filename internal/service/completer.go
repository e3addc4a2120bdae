package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/ai-recruiter/internal/config"
	"go.uber.org/zap"
)

// Completer is a hosted text-generation model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// NewCompleter builds the completer selected by LLM_PROVIDER.
func NewCompleter(ctx context.Context, cfg *config.LLMConfig, log *zap.Logger) (Completer, error) {
	var (
		completer Completer
		err       error
	)
	switch cfg.Provider {
	case config.ProviderGroq:
		completer, err = NewGroqService(config.LoadGroqConfig(), cfg.Model, log)
	case config.ProviderOpenRouter:
		completer, err = NewOpenRouterService(config.LoadOpenRouterConfig(), cfg.Model, log)
	case config.ProviderGemini:
		completer, err = NewGeminiService(ctx, config.LoadGeminiConfig(), cfg.Model, log)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return completer, nil
}
