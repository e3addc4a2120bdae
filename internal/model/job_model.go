package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Job is one ranking run's job description. Embedding stays NULL when no
// embedder is configured or embedding failed.
type Job struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string           `gorm:"type:varchar(120)" json:"title"`
	Content        string           `gorm:"type:text" json:"content"`
	RecruiterEmail string           `gorm:"type:varchar(255);index" json:"recruiter_email"`
	ShortlistSize  int              `json:"shortlist_size"`
	Embedding      *pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

const maxJobTitle = 120

// JobTitleFrom takes the first non-empty line of a description, capped at
// 120 characters.
func JobTitleFrom(description string) string {
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > maxJobTitle {
			return string(r[:maxJobTitle])
		}
		return line
	}
	return ""
}
