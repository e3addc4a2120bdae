package config

import (
	"os"
	"sync"
)

type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

var (
	groqConfig *GroqConfig
	groqOnce   sync.Once
)

func LoadGroqConfig() *GroqConfig {
	groqOnce.Do(func() {
		groqConfig = &GroqConfig{
			APIKey:  os.Getenv("GROQ_API_KEY"),
			BaseURL: "https://api.groq.com/openai/v1",
			Model:   "llama-3.3-70b-versatile",
		}
	})
	return groqConfig
}
