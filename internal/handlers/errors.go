package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/models"
	"alfredoptarigan/resume-portfolio/internal/services"
)

var validate = validator.New()

// StatusForError maps a service failure category to its HTTP status.
func StatusForError(err error) int {
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidResume),
		errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConfigurationMissing):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrUpstreamUnavailable),
		errors.Is(err, services.ErrUpstreamContractViolation):
		return fiber.StatusBadGateway
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders err as the standard error body. Internal failures are
// logged and hidden from the client.
func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	code := StatusForError(err)
	detail := err.Error()

	if code >= fiber.StatusInternalServerError && code != fiber.StatusBadGateway && code != fiber.StatusServiceUnavailable {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		detail = "internal server error"
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Detail: detail,
		Code:   code,
	})
}

// NewErrorHandler is the Fiber fallback for errors returned by handlers and
// middleware.
func NewErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return writeError(c, log, err)
	}
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Detail: detail,
		Code:   fiber.StatusBadRequest,
	})
}
