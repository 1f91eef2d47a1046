package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventLoginLocked    EventType = "login_locked"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Email     string      `json:"email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, email string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Email:     email,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// LoginFailedPayload payload. Failures is zero when no throttle is configured.
type LoginFailedPayload struct {
	Failures int64 `json:"failures"`
}

// LoginLockedPayload payload.
type LoginLockedPayload struct {
	RetryAfter time.Duration `json:"retry_after"`
}
