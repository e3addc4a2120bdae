package config

import (
	"os"
	"strings"
	"sync"
)

const (
	ProviderGroq       = "groq"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// LLMConfig selects which hosted model ranks candidates. Model overrides the
// provider's default model name when set.
type LLMConfig struct {
	Provider string
	Model    string
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
		if provider == "" {
			provider = ProviderGroq
		}
		llmConfig = &LLMConfig{
			Provider: provider,
			Model:    os.Getenv("LLM_MODEL"),
		}
	})
	return llmConfig
}
