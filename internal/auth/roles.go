package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
	apperrors "github.com/spec-kit/rbac-dashboard/pkg/util"
)

// RequireRoleIn allows only principals whose role is one of allowed.
func RequireRoleIn(allowed ...domain.Role) fiber.Handler {
	set := append([]domain.Role(nil), allowed...)
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromFiber(c)
		if !ok {
			return apperrors.NewUnauthenticated("Authentication required")
		}
		if !domain.RoleIn(principal.Role, set) {
			return apperrors.NewForbidden("Insufficient permissions")
		}
		return c.Next()
	}
}

// RequireMinRole allows principals ranked at or above min.
func RequireMinRole(min domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromFiber(c)
		if !ok {
			return apperrors.NewUnauthenticated("Authentication required")
		}
		if !domain.MeetsMinimum(principal.Role, min) {
			return apperrors.NewForbidden("Insufficient permissions")
		}
		return c.Next()
	}
}
