package dto

import "github.com/spec-kit/rbac-dashboard/internal/domain"

// Envelope is the body of every response, success or failure.
type Envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Code    string           `json:"code,omitempty"`
	Data    any              `json:"data,omitempty"`
	Token   string           `json:"token,omitempty"`
	User    *domain.Identity `json:"user,omitempty"`
	Details map[string]any   `json:"details,omitempty"`
}

// OK wraps a payload in a success envelope.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}
