package handler

import (
	"context"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
	"github.com/fadilmartias/ai-recruiter/internal/dto"
	"github.com/fadilmartias/ai-recruiter/internal/middleware"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/usecase"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"github.com/gofiber/fiber/v2"
)

type RecruiterService interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*model.Recruiter, error)
	Login(ctx context.Context, email, password string) (*model.Recruiter, error)
}

type RecruiterHandler struct {
	uc       RecruiterService
	sessions *middleware.Sessions
}

func NewRecruiterHandler(uc RecruiterService, sessions *middleware.Sessions) *RecruiterHandler {
	return &RecruiterHandler{uc: uc, sessions: sessions}
}

func (h *RecruiterHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/recruiters")
	group.Post("/signup", middleware.RateLimiter(5, time.Minute), h.Signup)
	group.Post("/login", middleware.RateLimiter(10, time.Minute), h.Login)
	group.Post("/logout", h.Logout)
}

func (h *RecruiterHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := util.Validate(&req); err != nil {
		return domainError(c, err)
	}

	r, err := h.uc.Signup(c.UserContext(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return domainError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Recruiter registered",
		Data:    toRecruiterDTO(r),
	})
}

func (h *RecruiterHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := util.Validate(&req); err != nil {
		return domainError(c, err)
	}

	r, err := h.uc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.sessions.Start(c, auth.Identity{
		Kind:  auth.KindRecruiter,
		Email: r.Email,
		Role:  r.Role,
	}); err != nil {
		return domainError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Logged in",
		Data:    toRecruiterDTO(r),
	})
}

func (h *RecruiterHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.End(c); err != nil {
		return domainError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Logged out"})
}

func toRecruiterDTO(r *model.Recruiter) dto.RecruiterDTO {
	return dto.RecruiterDTO{ID: r.ID, Name: r.Name, Email: r.Email, Role: r.Role}
}
