package handlers

import (
	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/pkg/event"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	EventHandler interface {
		ListEvents(c *fiber.Ctx) error
		GetEvent(c *fiber.Ctx) error
		CreateEvent(c *fiber.Ctx) error
		UpdateEvent(c *fiber.Ctx) error
		UploadImage(c *fiber.Ctx) error
		Register(c *fiber.Ctx) error
		GetUserRegistrations(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
		ApproveEvent(c *fiber.Ctx) error
		UpdateRegistrationStatus(c *fiber.Ctx) error
		CompleteEvent(c *fiber.Ctx) error
	}

	eventHandler struct {
		eventService event.EventService
		validator    *validator.Validate
	}
)

func NewEventHandler(eventService event.EventService, validator *validator.Validate) EventHandler {
	return &eventHandler{
		eventService: eventService,
		validator:    validator,
	}
}

func (h *eventHandler) ListEvents(c *fiber.Ctx) error {
	filter := domain.EventFilter{
		Category:  c.Query("category"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		PageQuery: pageQuery(c),
	}

	res, err := h.eventService.ListEvents(c.UserContext(), filter)
	if err != nil {
		return failure(c, domain.MessageFailedGetEvents, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetEvents)
}

func (h *eventHandler) GetEvent(c *fiber.Ctx) error {
	res, err := h.eventService.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetEvents, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetEvent)
}

func (h *eventHandler) CreateEvent(c *fiber.Ctx) error {
	req := new(domain.CreateEventRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.eventService.CreateEvent(c.UserContext(), actor(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedCreateEvent, err)
	}

	if !res.IsApproved {
		return presenters.ToastResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateEventPending, presenters.ToastWarning)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateEvent)
}

func (h *eventHandler) UpdateEvent(c *fiber.Ctx) error {
	req := new(domain.UpdateEventRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.eventService.UpdateEvent(c.UserContext(), actor(c), c.Params("id"), *req)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateEvent, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateEvent)
}

func (h *eventHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.eventService.UploadImage(c.UserContext(), actor(c), c.Params("id"), file)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateEvent, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadEventImage)
}

func (h *eventHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterEventRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.eventService.Register(c.UserContext(), actor(c), req.EventID)
	if err != nil {
		return failure(c, domain.MessageFailedRegisterEvent, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegisterEvent)
}

func (h *eventHandler) GetUserRegistrations(c *fiber.Ctx) error {
	res, err := h.eventService.GetUserRegistrations(c.UserContext(), actor(c).ID)
	if err != nil {
		return failure(c, domain.MessageFailedGetEvents, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRegistrations)
}

func (h *eventHandler) GetHistory(c *fiber.Ctx) error {
	res, err := h.eventService.GetHistory(c.UserContext(), actor(c).ID)
	if err != nil {
		return failure(c, domain.MessageFailedGetEvents, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

func (h *eventHandler) ApproveEvent(c *fiber.Ctx) error {
	req := new(domain.ApproveEventRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.eventService.ApproveEvent(c.UserContext(), actor(c), c.Params("eventId"), *req)
	if err != nil {
		return failure(c, domain.MessageFailedApproveEvent, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApproveEvent)
}

func (h *eventHandler) UpdateRegistrationStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateRegistrationStatusRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.eventService.UpdateRegistrationStatus(c.UserContext(), actor(c), c.Params("registrationId"), *req)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateRegistrationState, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRegistration)
}

func (h *eventHandler) CompleteEvent(c *fiber.Ctx) error {
	res, err := h.eventService.CompleteEvent(c.UserContext(), actor(c), c.Params("eventId"))
	if err != nil {
		return failure(c, domain.MessageFailedCompleteEvent, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCompleteEvent)
}
