package handlers

import (
	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/pkg/notification"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		List(c *fiber.Ctx) error
		MarkRead(c *fiber.Ctx) error
		MarkAllRead(c *fiber.Ctx) error
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		VapidPublicKey(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
		validator           *validator.Validate
	}
)

func NewNotificationHandler(notificationService notification.NotificationService, validator *validator.Validate) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
		validator:           validator,
	}
}

func (h *notificationHandler) List(c *fiber.Ctx) error {
	filter := domain.NotificationFilter{
		UnreadOnly: c.QueryBool("unreadOnly", false),
		PageQuery:  pageQuery(c),
	}

	res, err := h.notificationService.List(c.UserContext(), actor(c).ID, filter)
	if err != nil {
		return failure(c, domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) MarkRead(c *fiber.Ctx) error {
	res, err := h.notificationService.MarkRead(c.UserContext(), actor(c).ID, c.Params("notificationId"))
	if err != nil {
		return failure(c, domain.MessageFailedMarkRead, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMarkRead)
}

func (h *notificationHandler) MarkAllRead(c *fiber.Ctx) error {
	res, err := h.notificationService.MarkAllRead(c.UserContext(), actor(c).ID)
	if err != nil {
		return failure(c, domain.MessageFailedMarkRead, err)
	}

	if res.Modified == 0 {
		return presenters.ToastResponse(c, res, fiber.StatusOK, domain.MessageNoUnreadNotifications, presenters.ToastInfo)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMarkAllRead)
}

func (h *notificationHandler) Subscribe(c *fiber.Ctx) error {
	req := new(domain.SubscribeRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	if err := h.notificationService.Subscribe(c.UserContext(), actor(c).ID, *req); err != nil {
		return failure(c, domain.MessageFailedSubscribe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSubscribe)
}

func (h *notificationHandler) Unsubscribe(c *fiber.Ctx) error {
	req := new(domain.UnsubscribeRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	if err := h.notificationService.Unsubscribe(c.UserContext(), actor(c).ID, req.Endpoint); err != nil {
		return failure(c, domain.MessageFailedUnsubscribe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnsubscribe)
}

func (h *notificationHandler) VapidPublicKey(c *fiber.Ctx) error {
	key, err := h.notificationService.VapidPublicKey()
	if err != nil {
		return failure(c, domain.ErrVapidNotConfigured.Message, err)
	}

	return presenters.SuccessResponse(c, domain.VapidKeyResponse{PublicKey: key}, fiber.StatusOK, domain.MessageSuccessVapidKey)
}
