package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

type principalKey struct{}

// Principal represents the authenticated caller for the duration of one request.
type Principal struct {
	domain.Identity
	ExpiresAt int64
}

// WithPrincipal returns a copy of ctx carrying the principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// PrincipalFromFiber reads the principal from the request's user context.
func PrincipalFromFiber(c *fiber.Ctx) (*Principal, bool) {
	return PrincipalFromContext(c.UserContext())
}
