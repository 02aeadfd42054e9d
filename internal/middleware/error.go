package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"inventory/internal/apperrors"
	"inventory/internal/models"
)

// ErrorHandler renders every error as the JSON error envelope.
// Routing errors raised by fiber itself keep their status and message.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := resolve(err)

		requestID, _ := c.Locals("requestid").(string)
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("Request failed", fields...)
		} else {
			logger.Debug("Request rejected", fields...)
		}

		return c.Status(status).JSON(body)
	}
}

func resolve(err error) (int, models.ErrorResponse) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return apperrors.Response(appErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code >= fiber.StatusInternalServerError {
			return apperrors.Response(apperrors.Internal(fiberErr))
		}
		return fiberErr.Code, models.NewErrorResponse(fiberErr.Message)
	}

	return apperrors.Response(err)
}
