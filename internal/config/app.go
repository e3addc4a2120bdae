package config

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type AppConfig struct {
	Name       string
	Env        string
	Port       string
	BaseURL    string
	SessionTTL time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "AI Recruiter"
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":8080"
		}
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		ttl := 24 * time.Hour
		if raw := os.Getenv("SESSION_TTL"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil || parsed <= 0 {
				log.Printf("Warning: invalid SESSION_TTL %q, using %s", raw, ttl)
			} else {
				ttl = parsed
			}
		}
		appConfig = &AppConfig{
			Name:       name,
			Env:        env,
			Port:       port,
			BaseURL:    strings.TrimRight(os.Getenv("APP_URL"), "/"),
			SessionTTL: ttl,
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
