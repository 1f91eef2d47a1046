// Package guard decides, for a navigation to a client view, whether to render it, wait
// for the session, or redirect. It applies the same role predicates as the server gates.
package guard

import (
	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

// Outcome is the result of navigating to a view.
type Outcome int

const (
	// Loading means the session has not resolved yet; nothing protected is shown.
	Loading Outcome = iota
	RedirectLogin
	RedirectUnauthorized
	Render
	// Redirect and NotFound come from the route table, not from a guard.
	Redirect
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Client paths the guard redirects to.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	DashboardPath    = "/dashboard"
)

// SessionState is the client's view of its session. User is nil when unauthenticated.
type SessionState struct {
	Resolved bool
	User     *domain.Identity
}

// Authenticated reports whether a session resolved to a user.
func (s SessionState) Authenticated() bool {
	return s.Resolved && s.User != nil
}

// Guard protects one view. Both checks apply when both are set.
type Guard struct {
	RequiredRoles []domain.Role
	MinRole       domain.Role
}

// Decision is a guard or router verdict. Location is set for redirects.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Decide evaluates the guard against the session.
func (g Guard) Decide(state SessionState) Decision {
	if !state.Resolved {
		return Decision{Outcome: Loading}
	}
	if state.User == nil {
		return Decision{Outcome: RedirectLogin, Location: LoginPath}
	}
	role := state.User.Role
	if len(g.RequiredRoles) > 0 && !domain.RoleIn(role, g.RequiredRoles) {
		return Decision{Outcome: RedirectUnauthorized, Location: UnauthorizedPath}
	}
	if g.MinRole != "" && !domain.MeetsMinimum(role, g.MinRole) {
		return Decision{Outcome: RedirectUnauthorized, Location: UnauthorizedPath}
	}
	return Decision{Outcome: Render}
}
