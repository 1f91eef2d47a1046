package worker

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
	"github.com/spec-kit/rbac-dashboard/internal/events"
	"github.com/spec-kit/rbac-dashboard/internal/observability"
	"github.com/spec-kit/rbac-dashboard/internal/service"
)

func TestAuditWorkerRecordsLoginEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	metrics := observability.NewMetrics("audit_test")
	dispatcher := events.NewInMemoryDispatcher()

	StartAuditWorker(service.NewAuditService(dispatcher, zap.New(core), metrics))

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginSucceeded, "admin@demo.com",
		events.LoginSucceededPayload{UserID: "1", Role: domain.RoleAdmin})))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginFailed, "nobody@demo.com",
		events.LoginFailedPayload{Failures: 2})))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginLocked, "nobody@demo.com",
		events.LoginLockedPayload{RetryAfter: time.Minute})))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "LoginSucceeded", entries[0].Message)
	assert.Equal(t, "admin", entries[0].ContextMap()["role"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(2), entries[1].ContextMap()["failures"])
	assert.Equal(t, "LoginLocked", entries[2].Message)

	count, err := testutil.GatherAndCount(metrics.Registry(), "audit_test_logins_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestStartAuditWorkerNil(t *testing.T) {
	assert.NotPanics(t, func() { StartAuditWorker(nil) })
}
