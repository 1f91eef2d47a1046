package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/rbac-dashboard/internal/api/http"
	"github.com/spec-kit/rbac-dashboard/internal/auth"
	"github.com/spec-kit/rbac-dashboard/internal/domain"
	"github.com/spec-kit/rbac-dashboard/internal/guard"
	"github.com/spec-kit/rbac-dashboard/internal/repository"
)

// Each client view paired with the server route enforcing the same rule.
var pairings = []struct {
	view string
	api  string
}{
	{"/admin", "/api/admin/users"},
	{"/reports", "/api/manager/reports"},
	{"/dashboard", "/api/staff/profile"},
}

func TestGuardMatchesServerGates(t *testing.T) {
	records, err := repository.BuildRecords(repository.DefaultSeed(), bcrypt.MinCost)
	require.NoError(t, err)
	creds, err := repository.NewMemoryCredentialRepository(records)
	require.NoError(t, err)
	tokens, err := auth.NewTokenManager("symmetry-secret", auth.DefaultTokenTTL)
	require.NoError(t, err)
	app, err := httptransport.NewServer(httptransport.ServerConfig{Credentials: creds, Tokens: tokens, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	sessions := map[string]guard.SessionState{"anonymous": {Resolved: true}}
	bearer := map[string]string{"anonymous": ""}
	for _, role := range domain.AllRoles {
		identity := domain.Identity{ID: "1", Email: string(role) + "@demo.com", Name: "User", Role: role}
		token, _, err := tokens.Issue(identity)
		require.NoError(t, err)
		sessions[string(role)] = guard.SessionState{Resolved: true, User: &identity}
		bearer[string(role)] = token
	}

	for name, state := range sessions {
		for _, p := range pairings {
			t.Run(name+" "+p.view, func(t *testing.T) {
				decision, _ := guard.Navigate(p.view, state)

				req := httptest.NewRequest(http.MethodGet, p.api, nil)
				if tok := bearer[name]; tok != "" {
					req.Header.Set("Authorization", "Bearer "+tok)
				}
				resp, err := app.Test(req, -1)
				require.NoError(t, err)
				resp.Body.Close()

				assert.Equal(t, decision.Outcome == guard.Render, resp.StatusCode == http.StatusOK)
				assert.Equal(t, decision.Outcome == guard.RedirectUnauthorized, resp.StatusCode == http.StatusForbidden)
				assert.Equal(t, decision.Outcome == guard.RedirectLogin, resp.StatusCode == http.StatusUnauthorized)
			})
		}
	}
}
