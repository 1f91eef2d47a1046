// Package client talks to the dashboard API on behalf of a terminal user and keeps the
// client side session that the route guard consults.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

// StatusError is a non 2xx answer from the API.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

// IsAuthFailure reports whether err is a 401 or 403 from the API.
func IsAuthFailure(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden
}

// envelope mirrors the server response body.
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data,omitempty"`
	Token   string           `json:"token,omitempty"`
	User    *domain.Identity `json:"user,omitempty"`
}

// LoginResponse is a successful login.
type LoginResponse struct {
	Token string
	User  domain.Identity
}

// APIClient calls the dashboard API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient builds a client for baseURL. A nil httpClient gets a 10s timeout default.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &APIClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Login exchanges credentials for a token.
func (c *APIClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", payload)
	if err != nil {
		return nil, err
	}
	if env.Token == "" || env.User == nil {
		return nil, errors.New("login response missing token or user")
	}
	return &LoginResponse{Token: env.Token, User: *env.User}, nil
}

// Me returns the identity the token belongs to.
func (c *APIClient) Me(ctx context.Context, token string) (*domain.Identity, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	var identity domain.Identity
	if err := json.Unmarshal(env.Data, &identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &identity, nil
}

// Fetch GETs a guarded resource and returns its data payload.
func (c *APIClient) Fetch(ctx context.Context, token, path string) (json.RawMessage, error) {
	env, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *APIClient) do(ctx context.Context, method, path, token string, body []byte) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return &env, nil
}
