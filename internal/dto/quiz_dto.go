package dto

import "github.com/fadilmartias/ai-recruiter/internal/lifecycle"

type QuizLoginRequest struct {
	Token    string `json:"token" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type QuizSubmitRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
}

type QuizResultDTO struct {
	Correct          int                `json:"correct"`
	Total            int                `json:"total"`
	Score            float64            `json:"score"`
	Passed           bool               `json:"passed"`
	Status           lifecycle.Status   `json:"status"`
	AlreadyProcessed bool               `json:"already_processed"`
	Offer            *DispatchResultDTO `json:"offer_dispatch,omitempty"`
}
