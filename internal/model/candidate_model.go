package model

import (
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Candidate struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateName  string           `gorm:"type:varchar(255)" json:"candidate_name"`
	Email          string           `gorm:"type:varchar(255);index" json:"email"`
	Score          float64          `gorm:"type:float" json:"score"`
	Reason         string           `gorm:"type:text" json:"reason"`
	PasswordHash   string           `gorm:"type:varchar(255)" json:"-"`
	QuizToken      string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	QuizLink       string           `gorm:"type:text" json:"quiz_link"`
	QuizScore      *float64         `gorm:"type:float" json:"quiz_score"`
	Status         lifecycle.Status `gorm:"type:varchar(20);index;not null" json:"status"`
	RecruiterEmail string           `gorm:"type:varchar(255);index" json:"recruiter_email"`
	JobID          *uuid.UUID       `gorm:"type:uuid;index" json:"job_id,omitempty"`
	OfferSentAt    *time.Time       `json:"offer_sent_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
