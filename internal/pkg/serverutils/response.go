package serverutils

import (
	"errors"

	"agrisense-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Server error"

// ErrorResponse is the single error body shape of the API.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"message": message}
}

// ErrorStatus maps an apperror kind to its HTTP status. Signup conflicts stay 400.
func ErrorStatus(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindConflict:
		return fiber.StatusBadRequest
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorMessage never leaks the cause of an internal error.
func ErrorMessage(err error) string {
	appErr, ok := apperror.As(err)
	if !ok || appErr.Message == "" {
		return internalErrorMessage
	}
	return appErr.Message
}

// WriteError renders err with ErrorStatus and ErrorMessage.
func WriteError(ctx *fiber.Ctx, err error) error {
	return ctx.Status(ErrorStatus(err)).JSON(ErrorResponse(ErrorMessage(err)))
}

// ErrorHandlerMiddleware is installed as fiber's ErrorHandler for errors returned by handlers.
func ErrorHandlerMiddleware(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
	}
	if _, ok := apperror.As(err); ok {
		return WriteError(ctx, err)
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(internalErrorMessage))
}
