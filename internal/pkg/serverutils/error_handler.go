package serverutils

import (
	"errors"

	"edumate-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns any error returned by a handler into a
// BaseResponse. AppError and fiber.Error carry their own status; known
// sentinel errors are mapped through statuses; everything else is a 500
// with a generic message.
func ErrorHandlerMiddleware(log logger.ILogger, statuses ...ErrorStatus) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var appErr *AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			code, message = appErr.Code, appErr.Message
		case errors.As(err, &fiberErr):
			code, message = fiberErr.Code, fiberErr.Message
		default:
			if c, m, ok := resolveStatus(err, statuses); ok {
				code, message = c, m
			}
		}

		details := map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": code,
			"error":  err.Error(),
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", message, details)
		} else {
			log.Warn("HTTP", message, details)
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
