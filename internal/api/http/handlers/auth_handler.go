package handlers

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rbac-dashboard/internal/api/dto"
	"github.com/spec-kit/rbac-dashboard/internal/auth"
	"github.com/spec-kit/rbac-dashboard/internal/service"
	apperrors "github.com/spec-kit/rbac-dashboard/pkg/util"
)

// Authenticator is the login surface the handler needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// AuthHandler exposes login and the current-session endpoint.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService Authenticator) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Email and password are required", nil)
	}
	if fields, err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("Email and password are required", fields)
	}

	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		var locked *service.LockedError
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return apperrors.NewInvalidCredentials()
		case errors.As(err, &locked):
			seconds := int(math.Ceil(locked.RetryAfter.Seconds()))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
			return apperrors.NewTooManyRequests("Too many failed login attempts", map[string]any{
				"retry_after_seconds": seconds,
			})
		default:
			return apperrors.NewInternalError(err)
		}
	}

	user := res.User
	return c.JSON(dto.Envelope{
		Success: true,
		Message: "Login successful",
		Token:   res.Token,
		User:    &user,
		Data:    fiber.Map{"expiresAt": res.ExpiresAt.UTC().Format(time.RFC3339)},
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromFiber(c)
	if !ok {
		return apperrors.NewUnauthenticated("Authentication required")
	}
	return c.JSON(dto.OK("User info retrieved", principal.Identity))
}
