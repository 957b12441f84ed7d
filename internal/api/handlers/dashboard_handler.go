package handlers

import (
	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/pkg/dashboard"

	"github.com/gofiber/fiber/v2"
)

type (
	DashboardHandler interface {
		Stats(c *fiber.Ctx) error
		TrendingEvents(c *fiber.Ctx) error
		RecentPosts(c *fiber.Ctx) error
		Export(c *fiber.Ctx) error
	}

	dashboardHandler struct {
		dashboardService dashboard.DashboardService
	}
)

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *dashboardHandler) Stats(c *fiber.Ctx) error {
	res, err := h.dashboardService.Stats(c.UserContext(), actor(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *dashboardHandler) TrendingEvents(c *fiber.Ctx) error {
	res, err := h.dashboardService.TrendingEvents(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return failure(c, domain.MessageFailedGetTrending, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTrending)
}

func (h *dashboardHandler) RecentPosts(c *fiber.Ctx) error {
	res, err := h.dashboardService.RecentPosts(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return failure(c, domain.MessageFailedGetRecent, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecent)
}

// Export streams the table as a file download rather than an envelope.
func (h *dashboardHandler) Export(c *fiber.Ctx) error {
	req := domain.ExportRequest{
		Type:   c.Query("type"),
		Format: c.Query("format", "json"),
	}

	table, err := h.dashboardService.Export(c.UserContext(), req.Type)
	if err != nil {
		return failure(c, domain.MessageFailedExport, err)
	}

	body, contentType, filename, err := dashboard.Render(table, req.Format)
	if err != nil {
		return failure(c, domain.MessageFailedExport, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(body)
}
