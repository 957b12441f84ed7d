package handlers

import (
	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/pkg/membership"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MembershipHandler interface {
		Register(c *fiber.Ctx) error
		Statistics(c *fiber.Ctx) error
		ListMemberships(c *fiber.Ctx) error
		Approve(c *fiber.Ctx) error
		Reject(c *fiber.Ctx) error
	}

	membershipHandler struct {
		membershipService membership.MembershipService
		validator         *validator.Validate
	}
)

func NewMembershipHandler(membershipService membership.MembershipService, validator *validator.Validate) MembershipHandler {
	return &membershipHandler{
		membershipService: membershipService,
		validator:         validator,
	}
}

func (h *membershipHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterMembershipRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.membershipService.Register(c.UserContext(), *req)
	if err != nil {
		return failure(c, domain.MessageFailedRegisterMembership, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegisterMembership)
}

func (h *membershipHandler) Statistics(c *fiber.Ctx) error {
	res, err := h.membershipService.Statistics(c.UserContext())
	if err != nil {
		return failure(c, domain.MessageFailedGetMembershipStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMembershipStats)
}

func (h *membershipHandler) ListMemberships(c *fiber.Ctx) error {
	filter := domain.MembershipFilter{
		Status:         c.Query("status"),
		MembershipType: c.Query("membershipType"),
		PageQuery:      pageQuery(c),
	}

	res, err := h.membershipService.ListMemberships(c.UserContext(), filter)
	if err != nil {
		return failure(c, domain.MessageFailedGetMemberships, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMemberships)
}

func (h *membershipHandler) Approve(c *fiber.Ctx) error {
	res, err := h.membershipService.Approve(c.UserContext(), c.Params("membershipId"))
	if err != nil {
		return failure(c, domain.MessageFailedUpdateMembership, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApproveMembership)
}

func (h *membershipHandler) Reject(c *fiber.Ctx) error {
	res, err := h.membershipService.Reject(c.UserContext(), c.Params("membershipId"))
	if err != nil {
		return failure(c, domain.MessageFailedUpdateMembership, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRejectMembership)
}
