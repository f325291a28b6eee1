// FILE: internal/pkg/serverutils/error_middleware.go
package serverutils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"code-assistant-be/internal/pkg/apperrors"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// standard response envelope. Domain sentinels map to client statuses; an
// unrecognized error is a 500 and the detail stays in the server log only.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)
			return ctx.Status(status).JSON(ErrorResponse(status, "Internal server error"))
		}
		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}

func statusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrAmbiguousReference),
		errors.Is(err, apperrors.ErrDimensionMismatch):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrNoPriorResult):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrExplanationUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
