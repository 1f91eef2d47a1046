package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rbac-dashboard/internal/api/dto"
	"github.com/spec-kit/rbac-dashboard/internal/auth"
	"github.com/spec-kit/rbac-dashboard/internal/service"
	apperrors "github.com/spec-kit/rbac-dashboard/pkg/util"
)

// StaffHandler serves data every authenticated role can see.
type StaffHandler struct {
	dashboard *service.DashboardService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(dashboard *service.DashboardService) *StaffHandler {
	return &StaffHandler{dashboard: dashboard}
}

// Profile handles GET /api/staff/profile.
func (h *StaffHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromFiber(c)
	if !ok {
		return apperrors.NewUnauthenticated("Authentication required")
	}
	return c.JSON(dto.OK("Profile retrieved successfully", h.dashboard.Profile(principal.Identity)))
}

// Tasks handles GET /api/staff/tasks.
func (h *StaffHandler) Tasks(c *fiber.Ctx) error {
	return c.JSON(dto.OK("Tasks retrieved successfully", h.dashboard.Tasks()))
}

// Notifications handles GET /api/staff/notifications.
func (h *StaffHandler) Notifications(c *fiber.Ctx) error {
	return c.JSON(dto.OK("Notifications retrieved successfully", h.dashboard.Notifications()))
}

// UpdateTask handles PATCH /api/staff/tasks/:id.
func (h *StaffHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("task id must be an integer", nil)
	}
	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if fields, err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("invalid task status", fields)
	}
	return c.JSON(dto.OK("Task updated successfully", h.dashboard.UpdateTask(id, req.Status, callerName(c))))
}
