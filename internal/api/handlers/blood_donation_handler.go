package handlers

import (
	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/internal/middleware"
	"volunteerhub-backend/pkg/blooddonation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BloodDonationHandler interface {
		Register(c *fiber.Ctx) error
		Statistics(c *fiber.Ctx) error
		ListDonations(c *fiber.Ctx) error
		UpdateStatus(c *fiber.Ctx) error
	}

	bloodDonationHandler struct {
		bloodDonationService blooddonation.BloodDonationService
		validator            *validator.Validate
	}
)

func NewBloodDonationHandler(bloodDonationService blooddonation.BloodDonationService, validator *validator.Validate) BloodDonationHandler {
	return &bloodDonationHandler{
		bloodDonationService: bloodDonationService,
		validator:            validator,
	}
}

// Register is public; a signed-in donor is linked to the registration.
func (h *bloodDonationHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterDonationRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	var userID string
	if a, ok := middleware.CurrentActor(c); ok {
		userID = a.ID
	}

	res, err := h.bloodDonationService.Register(c.UserContext(), userID, *req)
	if err != nil {
		return failure(c, domain.MessageFailedRegisterDonation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegisterDonation)
}

func (h *bloodDonationHandler) Statistics(c *fiber.Ctx) error {
	res, err := h.bloodDonationService.Statistics(c.UserContext())
	if err != nil {
		return failure(c, domain.MessageFailedGetBloodStatistics, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBloodStatistics)
}

func (h *bloodDonationHandler) ListDonations(c *fiber.Ctx) error {
	filter := domain.DonationFilter{
		Status:    c.Query("status"),
		BloodType: c.Query("bloodType"),
		PageQuery: pageQuery(c),
	}

	res, err := h.bloodDonationService.ListDonations(c.UserContext(), filter)
	if err != nil {
		return failure(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *bloodDonationHandler) UpdateStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateDonationStatusRequest)
	if ok, err := bindRequest(c, h.validator, req); !ok {
		return err
	}

	res, err := h.bloodDonationService.UpdateStatus(c.UserContext(), c.Params("donationId"), *req)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateDonationStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateDonationStatus)
}
