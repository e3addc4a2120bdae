package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/credential"
	"github.com/fadilmartias/ai-recruiter/internal/dto"
	"github.com/fadilmartias/ai-recruiter/internal/middleware"
	"github.com/fadilmartias/ai-recruiter/internal/usecase"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxResumeSize = 5 * 1024 * 1024

type ShortlistRunner interface {
	Run(ctx context.Context, in usecase.ShortlistInput) (*usecase.ShortlistResult, error)
}

type ShortlistHandler struct {
	uc ShortlistRunner
}

func NewShortlistHandler(uc ShortlistRunner) *ShortlistHandler {
	return &ShortlistHandler{uc: uc}
}

func (h *ShortlistHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/shortlists", middleware.RequireRecruiter(), middleware.RateLimiter(5, time.Minute), h.Create)
}

// Create accepts either a JSON body with résumé texts or a multipart form
// with .txt résumé files under "resumes".
func (h *ShortlistHandler) Create(c *fiber.Ctx) error {
	var req dto.ShortlistRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(c, "invalid multipart form", err)
		}
		for _, file := range form.File["resumes"] {
			content, err := h.processFile(file)
			if err != nil {
				return badRequest(c, err.Error(), nil)
			}
			req.Resumes = append(req.Resumes, content)
		}
	}

	if err := util.Validate(&req); err != nil {
		return domainError(c, err)
	}

	res, err := h.uc.Run(c.UserContext(), usecase.ShortlistInput{
		JobDescription: req.JobDescription,
		Resumes:        req.Resumes,
		TopN:           req.TopN,
		SendEmails:     req.SendEmails,
	})
	var partial *credential.PartialIssueError
	if errors.As(err, &partial) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Credential issuance stopped partway",
			Details: fiber.Map{
				"persisted": partial.Persisted,
				"failed":    partial.Failed,
				"shortlist": toShortlistResponse(res),
			},
		}, err)
	}
	if err != nil {
		return domainError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Shortlist created",
		Data:    toShortlistResponse(res),
	})
}

// processFile reads one uploaded résumé. Only plain text is accepted.
func (h *ShortlistHandler) processFile(file *multipart.FileHeader) (string, error) {
	if file.Size > maxResumeSize {
		return "", fmt.Errorf("%s is too large (max 5MB)", file.Filename)
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".txt" {
		return "", fmt.Errorf("unsupported file type %q for %s", ext, file.Filename)
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("cannot read %s", file.Filename)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("cannot read %s", file.Filename)
	}
	return string(content), nil
}

func toShortlistResponse(res *usecase.ShortlistResult) *dto.ShortlistResponse {
	if res == nil {
		return nil
	}
	out := &dto.ShortlistResponse{
		JobID:      res.JobID,
		Ranked:     res.Ranked,
		Candidates: make([]dto.ShortlistedCandidateDTO, 0, len(res.Issued)),
	}
	for _, is := range res.Issued {
		c := is.Candidate
		item := dto.ShortlistedCandidateDTO{
			ID:            c.ID,
			CandidateName: c.CandidateName,
			Email:         c.Email,
			Score:         c.Score,
			Reason:        c.Reason,
			QuizLink:      c.QuizLink,
			Status:        c.Status,
			Warnings:      is.Warnings,
		}
		if is.Dispatch != nil {
			item.Dispatch = &dto.DispatchResultDTO{Success: is.Dispatch.Success, Message: is.Dispatch.Message}
		}
		out.Candidates = append(out.Candidates, item)
	}
	for _, r := range res.Rejected {
		out.Rejected = append(out.Rejected, dto.RejectedRecordDTO{Index: r.Index, Reason: r.Reason})
	}
	return out
}
