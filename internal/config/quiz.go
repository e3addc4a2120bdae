package config

import (
	"os"
	"sync"
)

type QuizConfig struct {
	BaseURL string
}

var (
	quizConfig *QuizConfig
	quizOnce   sync.Once
)

// LoadQuizConfig resolves the link prefix a quiz token is appended to.
func LoadQuizConfig() *QuizConfig {
	quizOnce.Do(func() {
		baseURL := os.Getenv("QUIZ_BASE_URL")
		if baseURL == "" {
			baseURL = LoadAppConfig().BaseURL + "/quiz?token="
		}
		quizConfig = &QuizConfig{BaseURL: baseURL}
	})
	return quizConfig
}
