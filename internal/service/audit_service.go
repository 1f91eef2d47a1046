package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/rbac-dashboard/internal/events"
	"github.com/spec-kit/rbac-dashboard/internal/observability"
)

// AuditService writes login events to the audit log and login counters.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleLoginSucceeded)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.dispatcher.Subscribe(events.EventLoginLocked, a.handleLoginLocked)
}

func (a *AuditService) handleLoginSucceeded(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID), zap.String("email", event.Email)}
	if p, ok := event.Payload.(events.LoginSucceededPayload); ok {
		fields = append(fields, zap.String("user_id", p.UserID), zap.String("role", string(p.Role)))
	}
	a.logger.Info("LoginSucceeded", fields...)
	a.metrics.RecordLogin("success")
	return nil
}

func (a *AuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID), zap.String("email", event.Email)}
	if p, ok := event.Payload.(events.LoginFailedPayload); ok {
		fields = append(fields, zap.Int64("failures", p.Failures))
	}
	a.logger.Warn("LoginFailed", fields...)
	a.metrics.RecordLogin("failure")
	return nil
}

func (a *AuditService) handleLoginLocked(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID), zap.String("email", event.Email)}
	if p, ok := event.Payload.(events.LoginLockedPayload); ok {
		fields = append(fields, zap.Duration("retry_after", p.RetryAfter))
	}
	a.logger.Warn("LoginLocked", fields...)
	a.metrics.RecordLogin("locked")
	return nil
}
