package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rbac-dashboard/internal/api/dto"
	"github.com/spec-kit/rbac-dashboard/internal/auth"
	"github.com/spec-kit/rbac-dashboard/internal/service"
	apperrors "github.com/spec-kit/rbac-dashboard/pkg/util"
)

// ManagerHandler serves data for managers and above.
type ManagerHandler struct {
	dashboard *service.DashboardService
}

// NewManagerHandler constructs handler.
func NewManagerHandler(dashboard *service.DashboardService) *ManagerHandler {
	return &ManagerHandler{dashboard: dashboard}
}

// Reports handles GET /api/manager/reports.
func (h *ManagerHandler) Reports(c *fiber.Ctx) error {
	return c.JSON(dto.OK("Reports retrieved successfully", h.dashboard.Reports(callerName(c))))
}

// Team handles GET /api/manager/team.
func (h *ManagerHandler) Team(c *fiber.Ctx) error {
	return c.JSON(dto.OK("Team overview retrieved", h.dashboard.Team()))
}

// GenerateReport handles POST /api/manager/reports/generate.
func (h *ManagerHandler) GenerateReport(c *fiber.Ctx) error {
	var req dto.GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if fields, err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("reportType is required", fields)
	}
	report := h.dashboard.GenerateReport(req.ReportType, callerName(c))
	return c.JSON(dto.OK("Report generation started", report))
}

func callerName(c *fiber.Ctx) string {
	if p, ok := auth.PrincipalFromFiber(c); ok {
		return p.Name
	}
	return ""
}
