package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

func sessionFor(role domain.Role) SessionState {
	return SessionState{Resolved: true, User: &domain.Identity{ID: "1", Email: "x@demo.com", Name: "X", Role: role}}
}

func TestDecide(t *testing.T) {
	adminOnly := Guard{RequiredRoles: []domain.Role{domain.RoleAdmin}}
	managerUp := Guard{MinRole: domain.RoleManager}
	both := Guard{RequiredRoles: []domain.Role{domain.RoleAdmin, domain.RoleStaff}, MinRole: domain.RoleManager}

	tests := []struct {
		name  string
		guard Guard
		state SessionState
		want  Outcome
	}{
		{"unresolved shows loading", managerUp, SessionState{}, Loading},
		{"unresolved with stale user still loading", adminOnly, SessionState{User: &domain.Identity{Role: domain.RoleAdmin}}, Loading},
		{"no user", Guard{}, SessionState{Resolved: true}, RedirectLogin},
		{"any session", Guard{}, sessionFor(domain.RoleStaff), Render},
		{"admin in set", adminOnly, sessionFor(domain.RoleAdmin), Render},
		{"manager not in set", adminOnly, sessionFor(domain.RoleManager), RedirectUnauthorized},
		{"staff below manager", managerUp, sessionFor(domain.RoleStaff), RedirectUnauthorized},
		{"manager meets manager", managerUp, sessionFor(domain.RoleManager), Render},
		{"admin exceeds manager", managerUp, sessionFor(domain.RoleAdmin), Render},
		{"unknown role denied", managerUp, sessionFor(domain.Role("guest")), RedirectUnauthorized},
		{"both checks pass", both, sessionFor(domain.RoleAdmin), Render},
		{"in set but below minimum", both, sessionFor(domain.RoleStaff), RedirectUnauthorized},
		{"above minimum but not in set", both, sessionFor(domain.RoleManager), RedirectUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.guard.Decide(tt.state)
			assert.Equal(t, tt.want, got.Outcome, got.Outcome.String())
			switch tt.want {
			case RedirectLogin:
				assert.Equal(t, LoginPath, got.Location)
			case RedirectUnauthorized:
				assert.Equal(t, UnauthorizedPath, got.Location)
			default:
				assert.Empty(t, got.Location)
			}
		})
	}
}

func TestStaffNeverSeesReports(t *testing.T) {
	decision, view := Navigate("/reports", sessionFor(domain.RoleStaff))
	assert.Equal(t, RedirectUnauthorized, decision.Outcome)
	assert.Equal(t, View{}, view)
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		state    SessionState
		want     Outcome
		location string
		view     string
	}{
		{"root redirects", "/", sessionFor(domain.RoleStaff), Redirect, DashboardPath, ""},
		{"login is public", LoginPath, SessionState{}, Render, "", "login"},
		{"unauthorized is public", UnauthorizedPath, SessionState{Resolved: true}, Render, "", "unauthorized"},
		{"dashboard while loading", DashboardPath, SessionState{}, Loading, "", ""},
		{"dashboard anonymous", DashboardPath, SessionState{Resolved: true}, RedirectLogin, LoginPath, ""},
		{"admin dashboard", DashboardPath, sessionFor(domain.RoleAdmin), Render, "", "admin-dashboard"},
		{"manager dashboard", DashboardPath, sessionFor(domain.RoleManager), Render, "", "manager-dashboard"},
		{"staff dashboard", DashboardPath, sessionFor(domain.RoleStaff), Render, "", "staff-dashboard"},
		{"admin sub path", "/admin/users", sessionFor(domain.RoleAdmin), Render, "", "admin-panel"},
		{"admin sub path denied", "/admin/users", sessionFor(domain.RoleManager), RedirectUnauthorized, UnauthorizedPath, ""},
		{"admin prefix is not a word prefix", "/administrator", sessionFor(domain.RoleAdmin), NotFound, "", ""},
		{"unknown page", "/nowhere", sessionFor(domain.RoleAdmin), NotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, view := Navigate(tt.path, tt.state)
			assert.Equal(t, tt.want, decision.Outcome)
			assert.Equal(t, tt.location, decision.Location)
			assert.Equal(t, tt.view, view.Name)
		})
	}
}

func TestDashboardForUnknownRole(t *testing.T) {
	view := DashboardFor(domain.Role("guest"))
	assert.Equal(t, "unknown-role", view.Name)
	assert.Empty(t, view.DataPath)
}
