package handler

import (
	"context"
	"strings"

	"github.com/fadilmartias/ai-recruiter/internal/dto"
	"github.com/fadilmartias/ai-recruiter/internal/middleware"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"github.com/gofiber/fiber/v2"
)

type JobFinder interface {
	List(ctx context.Context, limit int) ([]model.Job, error)
	Similar(ctx context.Context, query string, limit int) ([]model.Job, error)
}

type JobHandler struct {
	uc JobFinder
}

func NewJobHandler(uc JobFinder) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/jobs", middleware.RequireRecruiter())
	group.Get("/", h.List)
	group.Get("/similar", h.Similar)
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, err := h.uc.List(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return domainError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Job postings", Data: toJobDTOs(jobs)})
}

func (h *JobHandler) Similar(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return domainError(c, util.NewFormError("invalid request", map[string]string{"q": "is required"}))
	}
	jobs, err := h.uc.Similar(c.UserContext(), q, c.QueryInt("limit", 0))
	if err != nil {
		return domainError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Similar job postings", Data: toJobDTOs(jobs)})
}

func toJobDTOs(jobs []model.Job) []dto.JobDTO {
	out := make([]dto.JobDTO, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.JobDTO{
			ID:            j.ID,
			Title:         j.Title,
			Content:       j.Content,
			ShortlistSize: j.ShortlistSize,
			CreatedAt:     j.CreatedAt,
		})
	}
	return out
}
