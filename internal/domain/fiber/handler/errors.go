package handler

import (
	"errors"

	"github.com/fadilmartias/ai-recruiter/internal/ranking"
	"github.com/fadilmartias/ai-recruiter/internal/repository"
	"github.com/fadilmartias/ai-recruiter/internal/usecase"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"github.com/gofiber/fiber/v2"
)

// domainError maps usecase and pipeline errors to the error envelope.
func domainError(c *fiber.Ctx, err error) error {
	var formErr *util.FormError
	if errors.As(err, &formErr) {
		return util.FormErrorResponse(c, formErr)
	}
	var stale *usecase.StaleSessionError
	if errors.As(err, &stale) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: stale.Error(),
			Details: fiber.Map{"status": stale.Status},
		})
	}

	code, message := fiber.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, ranking.ErrMalformedOutput):
		code, message = fiber.StatusBadGateway, "Model returned malformed output"
	case errors.Is(err, ranking.ErrUpstream):
		code, message = fiber.StatusBadGateway, "Ranking service unavailable"
	case errors.Is(err, ranking.ErrInvalidCount),
		errors.Is(err, ranking.ErrEmptyJobDescription),
		errors.Is(err, ranking.ErrNoResumes):
		code, message = fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, usecase.ErrAuthFailed):
		// no dev details: they would reveal which field was wrong
		return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusUnauthorized, Message: "Invalid credentials"})
	case errors.Is(err, usecase.ErrUnauthenticated):
		code, message = fiber.StatusUnauthorized, "Login required"
	case errors.Is(err, usecase.ErrForbidden):
		code, message = fiber.StatusForbidden, "Not allowed"
	case errors.Is(err, usecase.ErrEmailTaken):
		code, message = fiber.StatusConflict, "Email already registered"
	case errors.Is(err, usecase.ErrEmbedderUnavailable):
		code, message = fiber.StatusServiceUnavailable, "Similarity search is not configured"
	case errors.Is(err, repository.ErrNotFound):
		code, message = fiber.StatusNotFound, "Not found"
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: fiber.StatusBadRequest, Message: message}, err)
}
