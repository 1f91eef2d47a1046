package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle tracks failed logins per email and locks an email out after too many.
// Unknown emails are tracked exactly like known ones.
type LoginThrottle interface {
	Locked(ctx context.Context, email string) (bool, time.Duration, error)
	RegisterFailure(ctx context.Context, email string) (failures int64, locked bool, err error)
	Clear(ctx context.Context, email string) error
}

type redisLoginThrottle struct {
	client      *redis.Client
	maxFailures int64
	lockout     time.Duration
}

// NewRedisLoginThrottle returns a throttle backed by Redis counters, or a no-op throttle
// when client is nil or the limits are disabled.
func NewRedisLoginThrottle(client *redis.Client, maxFailures int, lockout time.Duration) LoginThrottle {
	if client == nil || maxFailures <= 0 || lockout <= 0 {
		return NoopLoginThrottle{}
	}
	return &redisLoginThrottle{client: client, maxFailures: int64(maxFailures), lockout: lockout}
}

func failKey(email string) string { return "login_fail:" + strings.ToLower(email) }
func lockKey(email string) string { return "login_lock:" + strings.ToLower(email) }

func (t *redisLoginThrottle) Locked(ctx context.Context, email string) (bool, time.Duration, error) {
	ttl, err := t.client.TTL(ctx, lockKey(email)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, 0, err
	}
	if ttl > 0 {
		return true, ttl, nil
	}
	return false, 0, nil
}

func (t *redisLoginThrottle) RegisterFailure(ctx context.Context, email string) (int64, bool, error) {
	key := failKey(email)

	pipe := t.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.lockout)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, false, err
	}

	count := incr.Val()
	if count < t.maxFailures {
		return count, false, nil
	}
	if err := t.client.Set(ctx, lockKey(email), "1", t.lockout).Err(); err != nil {
		return count, false, err
	}
	t.client.Del(ctx, key)
	return count, true, nil
}

func (t *redisLoginThrottle) Clear(ctx context.Context, email string) error {
	return t.client.Del(ctx, failKey(email)).Err()
}

// NoopLoginThrottle never locks anyone out.
type NoopLoginThrottle struct{}

func (NoopLoginThrottle) Locked(context.Context, string) (bool, time.Duration, error) {
	return false, 0, nil
}

func (NoopLoginThrottle) RegisterFailure(context.Context, string) (int64, bool, error) {
	return 0, false, nil
}

func (NoopLoginThrottle) Clear(context.Context, string) error { return nil }
