package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rbac-dashboard/internal/auth"
	"github.com/spec-kit/rbac-dashboard/internal/domain"
	"github.com/spec-kit/rbac-dashboard/internal/events"
	"github.com/spec-kit/rbac-dashboard/internal/repository"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginLocked matches every LockedError.
	ErrLoginLocked = errors.New("login locked")
)

// LockedError is returned while an email is locked out after repeated failures.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("login locked, retry after %s", e.RetryAfter)
}

func (e *LockedError) Unwrap() error {
	return ErrLoginLocked
}

// TokenIssuer mints session tokens for verified identities.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, time.Time, error)
}

// LoginResult is a successful login.
type LoginResult struct {
	User      domain.Identity
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates the login flow.
type AuthService struct {
	credentials repository.CredentialRepository
	tokens      TokenIssuer
	throttle    LoginThrottle
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	dummyDigest string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Credentials repository.CredentialRepository
	Tokens      TokenIssuer
	Throttle    LoginThrottle
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	BcryptCost  int
}

// NewAuthService builds the service. It precomputes a digest used to keep the unknown
// email path as slow as the wrong password path.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	if deps.Credentials == nil || deps.Tokens == nil {
		return nil, errors.New("auth service requires credentials and tokens")
	}
	dummy, err := auth.HashPassword("not-a-real-password", deps.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy digest: %w", err)
	}

	s := &AuthService{
		credentials: deps.Credentials,
		tokens:      deps.Tokens,
		throttle:    deps.Throttle,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		dummyDigest: dummy,
	}
	if s.throttle == nil {
		s.throttle = NoopLoginThrottle{}
	}
	if s.dispatcher == nil {
		s.dispatcher = events.NewInMemoryDispatcher()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// Login verifies the credentials and mints a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	locked, retryAfter, err := s.throttle.Locked(ctx, email)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
	} else if locked {
		s.publish(ctx, events.NewEvent(events.EventLoginLocked, email, events.LoginLockedPayload{RetryAfter: retryAfter}))
		return nil, &LockedError{RetryAfter: retryAfter}
	}

	record, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup credentials: %w", err)
	}

	digest := s.dummyDigest
	if record != nil {
		digest = record.PasswordDigest
	}
	match, err := auth.VerifyPassword(password, digest)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if record == nil || !match {
		return nil, s.registerFailure(ctx, email)
	}

	if err := s.throttle.Clear(ctx, email); err != nil {
		s.logger.Warn("failed to clear login failures", zap.Error(err))
	}

	token, expiresAt, err := s.tokens.Issue(record.Identity)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.EventLoginSucceeded, email, events.LoginSucceededPayload{
		UserID: record.ID,
		Role:   record.Role,
	}))
	return &LoginResult{User: record.Identity, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) registerFailure(ctx context.Context, email string) error {
	failures, locked, err := s.throttle.RegisterFailure(ctx, email)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
	}
	s.publish(ctx, events.NewEvent(events.EventLoginFailed, email, events.LoginFailedPayload{Failures: failures}))
	if locked {
		s.logger.Info("email locked after repeated login failures", zap.Int64("failures", failures))
	}
	return ErrInvalidCredentials
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
