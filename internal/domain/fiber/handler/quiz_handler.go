package handler

import (
	"context"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
	"github.com/fadilmartias/ai-recruiter/internal/dto"
	"github.com/fadilmartias/ai-recruiter/internal/middleware"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/quiz"
	"github.com/fadilmartias/ai-recruiter/internal/usecase"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"github.com/gofiber/fiber/v2"
)

type QuizService interface {
	Login(ctx context.Context, token, email, password string) (*model.Candidate, error)
	Questions(ctx context.Context) ([]quiz.Question, error)
	Submit(ctx context.Context, answers map[string]string) (*usecase.SubmitResult, error)
}

type QuizHandler struct {
	uc       QuizService
	sessions *middleware.Sessions
}

func NewQuizHandler(uc QuizService, sessions *middleware.Sessions) *QuizHandler {
	return &QuizHandler{uc: uc, sessions: sessions}
}

func (h *QuizHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/quiz")
	group.Post("/login", middleware.RateLimiter(10, time.Minute), h.Login)
	group.Get("/questions", middleware.RequireCandidate(), h.Questions)
	group.Post("/submit", middleware.RequireCandidate(), h.Submit)
}

func (h *QuizHandler) Login(c *fiber.Ctx) error {
	var req dto.QuizLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := util.Validate(&req); err != nil {
		return domainError(c, err)
	}

	cand, err := h.uc.Login(c.UserContext(), req.Token, req.Email, req.Password)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.sessions.Start(c, auth.Identity{
		Kind:      auth.KindCandidate,
		Email:     cand.Email,
		QuizToken: cand.QuizToken,
	}); err != nil {
		return domainError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Quiz session started",
		Data:    fiber.Map{"candidate_name": cand.CandidateName, "status": cand.Status},
	})
}

func (h *QuizHandler) Questions(c *fiber.Ctx) error {
	questions, err := h.uc.Questions(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Quiz questions",
		Data:    questions,
	})
}

func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	var req dto.QuizSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := util.Validate(&req); err != nil {
		return domainError(c, err)
	}

	res, err := h.uc.Submit(c.UserContext(), req.Answers)
	if err != nil {
		return domainError(c, err)
	}

	out := dto.QuizResultDTO{
		Correct:          res.Correct,
		Total:            res.Total,
		Score:            res.Score,
		Passed:           res.Passed,
		Status:           res.Status,
		AlreadyProcessed: res.AlreadyProcessed,
	}
	if res.Offer != nil {
		out.Offer = &dto.DispatchResultDTO{Success: res.Offer.Success, Message: res.Offer.Message}
	}
	message := "Quiz graded"
	if res.AlreadyProcessed {
		message = "Quiz already processed"
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: message, Data: out})
}
