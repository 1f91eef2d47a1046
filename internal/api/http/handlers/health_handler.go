package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rbac-dashboard/internal/api/dto"
)

// Pinger is a dependency that can report its connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	environment string
	version     string
	deps        map[string]Pinger
	now         func() time.Time
}

// NewHealthHandler returns a new handler instance. deps holds the optional backing stores
// checked by the readiness probe; nil entries are skipped.
func NewHealthHandler(environment, version string, deps map[string]Pinger) *HealthHandler {
	active := make(map[string]Pinger, len(deps))
	for name, dep := range deps {
		if dep != nil {
			active[name] = dep
		}
	}
	return &HealthHandler{environment: environment, version: version, deps: active, now: time.Now}
}

// Live handles GET /health.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(dto.Envelope{
		Success: true,
		Message: "Server is running",
		Data: fiber.Map{
			"timestamp":   h.now().UTC().Format(time.RFC3339),
			"environment": h.environment,
			"version":     h.version,
		},
	})
}

// Ready handles GET /health/ready by pinging every configured dependency.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
			continue
		}
		depStatus[name] = "ok"
	}

	if ready {
		return c.JSON(dto.OK("ready", depStatus))
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Envelope{
		Success: false,
		Message: "one or more dependencies unavailable",
		Code:    "DEPENDENCY_UNAVAILABLE",
		Data:    depStatus,
	})
}
