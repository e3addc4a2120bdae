package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/dto"
	"github.com/fadilmartias/ai-recruiter/internal/middleware"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/response"
	"github.com/fadilmartias/ai-recruiter/internal/service"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CandidateService interface {
	Gallery(ctx context.Context, page, pageSize int) ([]model.Candidate, *response.Pagination, error)
	Export(ctx context.Context) ([]byte, error)
	ReissueCredentials(ctx context.Context, id uuid.UUID) (service.Dispatch, error)
}

type CandidateHandler struct {
	uc CandidateService
}

func NewCandidateHandler(uc CandidateService) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

func (h *CandidateHandler) RegisterRoutes(app *fiber.App) {
	recruiter := middleware.RequireRecruiter()
	app.Get("/gallery", recruiter, h.Gallery)
	app.Get("/shortlists/export", recruiter, h.Export)
	app.Post("/candidates/:id/credentials", recruiter, middleware.RateLimiter(10, time.Minute), h.Reissue)
}

func (h *CandidateHandler) Gallery(c *fiber.Ctx) error {
	candidates, pagination, err := h.uc.Gallery(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("page_size", 0))
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.CandidateDTO, 0, len(candidates))
	for _, cand := range candidates {
		items = append(items, dto.ToCandidateDTO(cand))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Selected candidates",
		Data:       items,
		Pagination: pagination,
	})
}

func (h *CandidateHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="shortlist-%s.xlsx"`, time.Now().UTC().Format("20060102")))
	return c.Send(data)
}

func (h *CandidateHandler) Reissue(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid candidate id", err)
	}
	d, err := h.uc.ReissueCredentials(c.UserContext(), id)
	if err != nil {
		return domainError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Credentials reissued",
		Data:    dto.DispatchResultDTO{Success: d.Success, Message: d.Message},
	})
}
