package util

import (
	"fmt"
	"runtime/debug"

	"github.com/fadilmartias/ai-recruiter/internal/config"
	"github.com/fadilmartias/ai-recruiter/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
}

type successEnvelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code    int
	Message string
	Details any
}

type errorEnvelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// FormError carries per-field validation messages keyed by JSON field name.
type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

// SuccessResponse writes the standard success envelope. Code defaults to 200.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(successEnvelope{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
	})
}

// ErrorResponse writes the standard error envelope. Code defaults to 500.
// Outside production the cause and a stack trace are attached as
// dev_message and trace.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	body := errorEnvelope{
		Message: params.Message,
		Details: params.Details,
	}
	if len(errs) > 0 && errs[0] != nil && !config.LoadAppConfig().IsProduction() {
		body.DevMessage = errs[0].Error()
		body.Trace = string(debug.Stack())
	}

	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(body)
}

// FormErrorResponse reports a FormError as 422 with its field map.
func FormErrorResponse(c *fiber.Ctx, formErr *FormError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(errorEnvelope{
		Message: formErr.Message,
		Details: formErr.Errors,
	})
}
