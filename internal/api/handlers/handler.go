package handlers

import (
	"errors"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/internal/middleware"
	"volunteerhub-backend/internal/utils"
	"volunteerhub-backend/internal/utils/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var kindStatus = map[domain.Kind]int{
	domain.KindInternal:        fiber.StatusInternalServerError,
	domain.KindInvalid:         fiber.StatusBadRequest,
	domain.KindUnauthenticated: fiber.StatusUnauthorized,
	domain.KindForbidden:       fiber.StatusForbidden,
	domain.KindNotFound:        fiber.StatusNotFound,
	domain.KindConflict:        fiber.StatusConflict,
	domain.KindRejected:        fiber.StatusBadRequest,
	domain.KindUnavailable:     fiber.StatusServiceUnavailable,
}

// bindRequest parses and validates the body into req. When it returns false the error
// response has already been written and err is the result of writing it.
func bindRequest(c *fiber.Ctx, v *validator.Validate, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := v.Struct(req); err != nil {
		return false, presenters.ValidationErrorResponse(c, domain.MessageValidationFailed, utils.FieldErrors(err))
	}
	return true, nil
}

// failure writes err with the status of its kind. Domain and upload errors carry their own
// message; anything else falls back to message.
func failure(c *fiber.Ctx, message string, err error) error {
	var de *domain.Error
	switch {
	case errors.As(err, &de):
		return presenters.ErrorResponse(c, kindStatus[de.Kind], de.Message, nil)
	case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrFileTypeNotAllowed):
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, storage.ErrStorageNotConfigured):
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, message, err)
	}
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
}

func pageQuery(c *fiber.Ctx) domain.PageQuery {
	return domain.PageQuery{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
	}
}

// actor is only called behind AuthMiddleware.
func actor(c *fiber.Ctx) domain.Actor {
	a, _ := middleware.CurrentActor(c)
	return a
}
