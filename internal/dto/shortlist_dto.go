package dto

import (
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/google/uuid"
)

type ShortlistRequest struct {
	JobDescription string   `json:"job_description" form:"job_description" validate:"required"`
	Resumes        []string `json:"resumes" validate:"required,min=1,dive,required"`
	TopN           int      `json:"top_n" form:"top_n" validate:"required,min=1,max=50"`
	SendEmails     bool     `json:"send_emails" form:"send_emails"`
}

type RejectedRecordDTO struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type DispatchResultDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ShortlistedCandidateDTO struct {
	ID            uuid.UUID          `json:"id"`
	CandidateName string             `json:"candidate_name"`
	Email         string             `json:"email"`
	Score         float64            `json:"score"`
	Reason        string             `json:"reason"`
	QuizLink      string             `json:"quiz_link"`
	Status        lifecycle.Status   `json:"status"`
	Warnings      []string           `json:"warnings,omitempty"`
	Dispatch      *DispatchResultDTO `json:"email_dispatch,omitempty"`
}

type ShortlistResponse struct {
	JobID      uuid.UUID                 `json:"job_id"`
	Ranked     int                       `json:"ranked"`
	Candidates []ShortlistedCandidateDTO `json:"candidates"`
	Rejected   []RejectedRecordDTO       `json:"rejected,omitempty"`
}

type CandidateDTO struct {
	ID            uuid.UUID        `json:"id"`
	CandidateName string           `json:"candidate_name"`
	Email         string           `json:"email"`
	Score         float64          `json:"score"`
	Reason        string           `json:"reason"`
	QuizScore     *float64         `json:"quiz_score"`
	Status        lifecycle.Status `json:"status"`
	OfferSentAt   *time.Time       `json:"offer_sent_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

func ToCandidateDTO(c model.Candidate) CandidateDTO {
	return CandidateDTO{
		ID:            c.ID,
		CandidateName: c.CandidateName,
		Email:         c.Email,
		Score:         c.Score,
		Reason:        c.Reason,
		QuizScore:     c.QuizScore,
		Status:        c.Status,
		OfferSentAt:   c.OfferSentAt,
		CreatedAt:     c.CreatedAt,
	}
}
