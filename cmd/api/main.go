package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/rbac-dashboard/internal/api/http"
	"github.com/spec-kit/rbac-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/rbac-dashboard/internal/auth"
	"github.com/spec-kit/rbac-dashboard/internal/config"
	"github.com/spec-kit/rbac-dashboard/internal/events"
	"github.com/spec-kit/rbac-dashboard/internal/observability"
	"github.com/spec-kit/rbac-dashboard/internal/persistence"
	"github.com/spec-kit/rbac-dashboard/internal/repository"
	"github.com/spec-kit/rbac-dashboard/internal/service"
	"github.com/spec-kit/rbac-dashboard/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingJWTSecret) {
			log.Fatalf("refusing to start: %v", err)
		}
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	records, err := loadSeed(cfg)
	if err != nil {
		logger.Fatal("failed to load seed accounts", zap.Error(err))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	probes := map[string]handlers.Pinger{}
	credentials, err := buildCredentials(ctx, cfg, pg, records, logger)
	if err != nil {
		logger.Fatal("failed to prepare credential store", zap.Error(err))
	}
	if pg.Enabled() {
		probes["postgres"] = pg
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	if redis != nil {
		probes["redis"] = redis
	}
	throttle := service.NewRedisLoginThrottle(redis.ClientHandle(), cfg.Auth.LoginMaxFailures, cfg.Auth.LoginLockout())

	metrics := observability.NewMetrics("rbac_dashboard")
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	app, err := httptransport.NewServer(httptransport.ServerConfig{
		AppName:     cfg.App.Name,
		Environment: cfg.App.Env,
		Version:     cfg.App.Version,
		Credentials: credentials,
		Tokens:      tokens,
		Throttle:    throttle,
		Dispatcher:  dispatcher,
		BcryptCost:  cfg.Auth.BcryptCost,
		Logger:      logger,
		Metrics:     metrics,
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Probes:      probes,
	})
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env", cfg.App.Env),
			zap.Int("accounts", len(records)))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func loadSeed(cfg *config.Config) ([]repository.SeedAccount, error) {
	if cfg.Seed.File == "" {
		return repository.DefaultSeed(), nil
	}
	return repository.LoadSeedFile(cfg.Seed.File)
}

func buildCredentials(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, accounts []repository.SeedAccount, logger *zap.Logger) (repository.CredentialRepository, error) {
	records, err := repository.BuildRecords(accounts, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	if !pg.Enabled() {
		return repository.NewMemoryCredentialRepository(records)
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	inserted, err := repository.SeedPostgres(ctx, pg.PoolHandle(), records)
	if err != nil {
		return nil, fmt.Errorf("seed postgres: %w", err)
	}
	logger.Info("credential seed applied", zap.Int("inserted", inserted))
	return repository.NewPostgresCredentialRepository(pg.PoolHandle()), nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
