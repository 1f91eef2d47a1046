package client

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
	"github.com/spec-kit/rbac-dashboard/internal/guard"
)

// SessionManager owns the client session: restoring it from the token store, logging in
// and out, and exposing the state the route guard evaluates.
type SessionManager struct {
	api    *APIClient
	store  TokenStore
	logger *zap.Logger

	mu       sync.Mutex
	restored bool
	token    string
	user     *domain.Identity
}

// NewSessionManager builds a manager. The session starts unresolved.
func NewSessionManager(api *APIClient, store TokenStore, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{api: api, store: store, logger: logger}
}

// Restore resolves the session from the persisted token. Only the first call talks to the
// API; later calls return the resolved state. A token the server rejects is discarded.
func (m *SessionManager) Restore(ctx context.Context) (guard.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.restored {
		return m.stateLocked(), nil
	}
	m.restored = true

	token, err := m.store.Load()
	if err != nil {
		return m.stateLocked(), err
	}
	if token == "" {
		return m.stateLocked(), nil
	}

	user, err := m.api.Me(ctx, token)
	if err != nil {
		if IsAuthFailure(err) {
			m.logger.Info("stored session rejected; clearing token", zap.Error(err))
			if clearErr := m.store.Clear(); clearErr != nil {
				return m.stateLocked(), clearErr
			}
			return m.stateLocked(), nil
		}
		return m.stateLocked(), fmt.Errorf("restore session: %w", err)
	}

	m.token = token
	m.user = user
	return m.stateLocked(), nil
}

// Login authenticates and persists the new token.
func (m *SessionManager) Login(ctx context.Context, email, password string) (guard.SessionState, error) {
	resp, err := m.api.Login(ctx, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.restored = true
	if err != nil {
		return m.stateLocked(), err
	}
	m.token = resp.Token
	user := resp.User
	m.user = &user
	if err := m.store.Save(resp.Token); err != nil {
		m.logger.Warn("failed to persist session token", zap.Error(err))
	}
	return m.stateLocked(), nil
}

// Logout drops the session and the persisted token.
func (m *SessionManager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restored = true
	m.token = ""
	m.user = nil
	return m.store.Clear()
}

// State returns the current session state.
func (m *SessionManager) State() guard.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Token returns the active bearer token, or "" when logged out.
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Fetch loads the data behind a view using the active token.
func (m *SessionManager) Fetch(ctx context.Context, view guard.View) ([]byte, error) {
	if view.DataPath == "" {
		return nil, nil
	}
	return m.api.Fetch(ctx, m.Token(), view.DataPath)
}

func (m *SessionManager) stateLocked() guard.SessionState {
	state := guard.SessionState{Resolved: m.restored}
	if m.user != nil {
		user := *m.user
		state.User = &user
	}
	return state
}
