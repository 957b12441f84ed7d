package handlers

import (
	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ManagerHandler interface {
		Apply(c *fiber.Ctx) error
		ListApplications(c *fiber.Ctx) error
		Approve(c *fiber.Ctx) error
		Reject(c *fiber.Ctx) error
		UpdateRole(c *fiber.Ctx) error
	}

	managerHandler struct {
		managerService user.ManagerService
		validator      *validator.Validate
	}
)

func NewManagerHandler(managerService user.ManagerService, validator *validator.Validate) ManagerHandler {
	return &managerHandler{
		managerService: managerService,
		validator:      validator,
	}
}

func (h *managerHandler) Apply(c *fiber.Ctx) error {
	req := new(domain.ManagerApplicationRequest)
	if len(c.Body()) > 0 {
		if ok, err := bindRequest(c, h.validator, req); !ok {
			return err
		}
	}

	res, err := h.managerService.Apply(c.UserContext(), actor(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedApplyManager, err)
	}

	return presenters.ToastResponse(c, res, fiber.StatusCreated, domain.MessageSuccessApplyManager, presenters.ToastInfo)
}

func (h *managerHandler) ListApplications(c *fiber.Ctx) error {
	res, err := h.managerService.ListApplications(c.UserContext(), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetApplications, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetApplications)
}

func (h *managerHandler) Approve(c *fiber.Ctx) error {
	res, err := h.managerService.Approve(c.UserContext(), actor(c), c.Params("userId"))
	if err != nil {
		return failure(c, domain.MessageFailedDecideApplication, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApproveApplication)
}

func (h *managerHandler) Reject(c *fiber.Ctx) error {
	res, err := h.managerService.Reject(c.UserContext(), actor(c), c.Params("userId"))
	if err != nil {
		return failure(c, domain.MessageFailedDecideApplication, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRejectApplication)
}

func (h *managerHandler) UpdateRole(c *fiber.Ctx) error {
	req := new(domain.UpdateRoleRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.managerService.UpdateRole(c.UserContext(), actor(c), c.Params("id"), *req)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateRole, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRole)
}
