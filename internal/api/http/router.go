package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/rbac-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/rbac-dashboard/internal/auth"
	"github.com/spec-kit/rbac-dashboard/internal/domain"
	"github.com/spec-kit/rbac-dashboard/internal/observability"
	apperrors "github.com/spec-kit/rbac-dashboard/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	Manager        *handlers.ManagerHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRoleIn(domain.RoleAdmin))
	admin.Get("/users", cfg.Admin.Users)
	admin.Get("/stats", cfg.Admin.Stats)
	admin.Get("/logs", cfg.Admin.Logs)

	manager := api.Group("/manager", cfg.AuthMiddleware.Handle, auth.RequireMinRole(domain.RoleManager))
	manager.Get("/reports", cfg.Manager.Reports)
	manager.Get("/team", cfg.Manager.Team)
	manager.Post("/reports/generate", cfg.Manager.GenerateReport)

	staff := api.Group("/staff", cfg.AuthMiddleware.Handle)
	staff.Get("/profile", cfg.Staff.Profile)
	staff.Get("/tasks", cfg.Staff.Tasks)
	staff.Get("/notifications", cfg.Staff.Notifications)
	staff.Patch("/tasks/:id", cfg.Staff.UpdateTask)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Route not found")
	})
}
