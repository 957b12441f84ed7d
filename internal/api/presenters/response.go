package presenters

import (
	"volunteerhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastWarning = "warning"
	ToastInfo    = "info"
)

type Response struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message"`
	ToastType string             `json:"toastType"`
	Data      any                `json:"data"`
	Errors    []utils.FieldError `json:"errors,omitempty"`
	Error     string             `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return ToastResponse(c, data, status, message, ToastSuccess)
}

// ToastResponse is a successful response whose toast is not a plain success, such as a
// warning for work that still awaits review.
func ToastResponse(c *fiber.Ctx, data any, status int, message string, toast string) error {
	return c.Status(status).JSON(Response{
		Success:   status < fiber.StatusBadRequest,
		Message:   message,
		ToastType: toast,
		Data:      data,
	})
}

// ErrorResponse hides err from the body on 5xx statuses.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	res := Response{
		Success:   false,
		Message:   message,
		ToastType: ToastError,
	}
	if err != nil && status < fiber.StatusInternalServerError && err.Error() != message {
		res.Error = err.Error()
	}
	return c.Status(status).JSON(res)
}

func ValidationErrorResponse(c *fiber.Ctx, message string, errs []utils.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success:   false,
		Message:   message,
		ToastType: ToastError,
		Errors:    errs,
	})
}
