package config

import (
	"os"
	"strconv"
	"sync"
)

type SMTPConfig struct {
	Server     string
	Port       int
	Email      string
	Password   string
	OverrideTo string
}

var (
	smtpConfig *SMTPConfig
	smtpOnce   sync.Once
)

func LoadSMTPConfig() *SMTPConfig {
	smtpOnce.Do(func() {
		// an unparsable port is reported by Missing rather than failing startup
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		smtpConfig = &SMTPConfig{
			Server:     os.Getenv("SMTP_SERVER"),
			Port:       port,
			Email:      os.Getenv("SMTP_EMAIL"),
			Password:   os.Getenv("SMTP_PASSWORD"),
			OverrideTo: os.Getenv("SMTP_OVERRIDE_TO"),
		}
	})
	return smtpConfig
}

// Missing lists the SMTP settings that are absent or invalid.
func (c *SMTPConfig) Missing() []string {
	var missing []string
	if c.Server == "" {
		missing = append(missing, "SMTP_SERVER")
	}
	if c.Port <= 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if c.Email == "" {
		missing = append(missing, "SMTP_EMAIL")
	}
	if c.Password == "" {
		missing = append(missing, "SMTP_PASSWORD")
	}
	return missing
}
