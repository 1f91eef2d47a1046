package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rbac-dashboard/internal/api/dto"
	"github.com/spec-kit/rbac-dashboard/internal/service"
	apperrors "github.com/spec-kit/rbac-dashboard/pkg/util"
)

// AdminHandler serves the admin-only dashboard data.
type AdminHandler struct {
	dashboard *service.DashboardService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(dashboard *service.DashboardService) *AdminHandler {
	return &AdminHandler{dashboard: dashboard}
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.dashboard.Users(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.OK("Users retrieved successfully", users))
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.OK("System statistics retrieved", stats))
}

// Logs handles GET /api/admin/logs.
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	return c.JSON(dto.OK("System logs retrieved", h.dashboard.Logs()))
}
