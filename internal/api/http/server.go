package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/rbac-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/rbac-dashboard/internal/auth"
	"github.com/spec-kit/rbac-dashboard/internal/events"
	"github.com/spec-kit/rbac-dashboard/internal/observability"
	"github.com/spec-kit/rbac-dashboard/internal/repository"
	"github.com/spec-kit/rbac-dashboard/internal/service"
)

// ServerConfig holds the collaborators needed to assemble the HTTP API.
type ServerConfig struct {
	AppName     string
	Environment string
	Version     string

	Credentials repository.CredentialRepository
	Tokens      *auth.TokenManager
	Throttle    service.LoginThrottle
	Dispatcher  events.Dispatcher
	BcryptCost  int

	Logger      *zap.Logger
	Metrics     *observability.Metrics
	Timeout     time.Duration
	CORSOrigins []string
	Probes      map[string]handlers.Pinger
}

// NewServer builds the fiber app with services, middleware and routes wired.
func NewServer(cfg ServerConfig) (*fiber.App, error) {
	if cfg.Credentials == nil || cfg.Tokens == nil {
		return nil, errors.New("server requires credentials and a token manager")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	authService, err := service.NewAuthService(service.AuthDependencies{
		Credentials: cfg.Credentials,
		Tokens:      cfg.Tokens,
		Throttle:    cfg.Throttle,
		Dispatcher:  cfg.Dispatcher,
		Logger:      logger,
		BcryptCost:  cfg.BcryptCost,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}
	dashboard := service.NewDashboardService(cfg.Credentials)

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ErrorHandler:          ErrorHandler(logger),
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:      logger,
		Metrics:     cfg.Metrics,
		Timeout:     cfg.Timeout,
		CORSOrigins: cfg.CORSOrigins,
	})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.Environment, cfg.Version, cfg.Probes),
		Auth:           handlers.NewAuthHandler(authService),
		Admin:          handlers.NewAdminHandler(dashboard),
		Manager:        handlers.NewManagerHandler(dashboard),
		Staff:          handlers.NewStaffHandler(dashboard),
		AuthMiddleware: auth.NewAuthMiddleware(cfg.Tokens, logger),
		Metrics:        cfg.Metrics,
	})
	return app, nil
}
