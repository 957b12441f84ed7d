package middleware

import (
	"errors"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders errors that escape a handler with the standard envelope.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			message := fe.Message
			if fe.Code == fiber.StatusNotFound {
				message = domain.MessageRouteNotFound
			}
			return presenters.ErrorResponse(c, fe.Code, message, nil)
		}
		logger.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageInternalServerError, err)
	}
}

func NotFound(c *fiber.Ctx) error {
	return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRouteNotFound, nil)
}
