package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
	apperrors "github.com/spec-kit/rbac-dashboard/pkg/util"
)

type mockDecoder struct {
	mock.Mock
}

func (m *mockDecoder) Decode(token string) (*Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Claims), args.Error(1)
}

func newGateApp(decoder TokenDecoder, gates ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).SendString(de.Code)
	}})
	chain := []fiber.Handler{NewAuthMiddleware(decoder, zap.NewNop()).Handle}
	chain = append(chain, gates...)
	chain = append(chain, func(c *fiber.Ctx) error {
		p, ok := PrincipalFromFiber(c)
		if !ok {
			return errors.New("principal missing after gates")
		}
		return c.SendString(string(p.Role))
	})
	app.Get("/resource", chain...)
	return app
}

func doGet(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddlewareHeaderHandling(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "just-a-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty bearer", "Bearer "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoder := new(mockDecoder)
			status, body := doGet(t, newGateApp(decoder), tt.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, apperrors.CodeUnauthenticated, body)
			decoder.AssertNotCalled(t, "Decode", mock.Anything)
		})
	}
}

func TestAuthMiddlewareDecodeFailuresCollapse(t *testing.T) {
	for _, cause := range []error{ErrInvalidSignature, ErrExpired, ErrMalformed} {
		t.Run(cause.Error(), func(t *testing.T) {
			decoder := new(mockDecoder)
			decoder.On("Decode", "bad").Return(nil, cause)

			status, body := doGet(t, newGateApp(decoder), "Bearer bad")
			assert.Equal(t, http.StatusForbidden, status)
			assert.Equal(t, apperrors.CodeInvalidToken, body)
			decoder.AssertExpectations(t)
		})
	}
}

func TestAuthMiddlewareAttachesPrincipal(t *testing.T) {
	decoder := new(mockDecoder)
	decoder.On("Decode", "good").Return(&Claims{ID: "3", Email: "staff@demo.com", Role: domain.RoleStaff}, nil)

	status, body := doGet(t, newGateApp(decoder), "bearer good")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "staff", body)
}

func TestPolicyGates(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := newTestManager(t, &now)

	tokenFor := func(role domain.Role) string {
		id := testIdentity
		id.Role = role
		token, _, err := tm.Issue(id)
		require.NoError(t, err)
		return "Bearer " + token
	}

	tests := []struct {
		name  string
		gates []fiber.Handler
		role  domain.Role
		want  int
	}{
		{"admin only admits admin", []fiber.Handler{RequireRoleIn(domain.RoleAdmin)}, domain.RoleAdmin, http.StatusOK},
		{"admin only rejects manager", []fiber.Handler{RequireRoleIn(domain.RoleAdmin)}, domain.RoleManager, http.StatusForbidden},
		{"admin only rejects staff", []fiber.Handler{RequireRoleIn(domain.RoleAdmin)}, domain.RoleStaff, http.StatusForbidden},
		{"min manager admits admin", []fiber.Handler{RequireMinRole(domain.RoleManager)}, domain.RoleAdmin, http.StatusOK},
		{"min manager admits manager", []fiber.Handler{RequireMinRole(domain.RoleManager)}, domain.RoleManager, http.StatusOK},
		{"min manager rejects staff", []fiber.Handler{RequireMinRole(domain.RoleManager)}, domain.RoleStaff, http.StatusForbidden},
		{"composed gates both pass", []fiber.Handler{RequireMinRole(domain.RoleStaff), RequireRoleIn(domain.RoleManager, domain.RoleStaff)}, domain.RoleManager, http.StatusOK},
		{"composed gates order independent", []fiber.Handler{RequireRoleIn(domain.RoleManager, domain.RoleStaff), RequireMinRole(domain.RoleManager)}, domain.RoleStaff, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doGet(t, newGateApp(tm, tt.gates...), tokenFor(tt.role))
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestPolicyWithoutAuthenticatorIsUnauthenticated(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).SendString(de.Code)
	}})
	app.Get("/a", RequireRoleIn(domain.RoleAdmin), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/m", RequireMinRole(domain.RoleStaff), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	for _, path := range []string{"/a", "/m"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}
