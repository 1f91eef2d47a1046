package guard

import (
	"strings"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
)

// View names a rendered screen and the API resource that backs it.
type View struct {
	Name     string
	DataPath string
}

// Route is one entry of the client route table.
type Route struct {
	Path string
	// Prefix routes also match any sub path.
	Prefix     bool
	Guard      *Guard
	RedirectTo string
	View       View
}

func (r Route) matches(path string) bool {
	if path == r.Path {
		return true
	}
	return r.Prefix && strings.HasPrefix(path, r.Path+"/")
}

// Routes is the client route table.
var Routes = []Route{
	{Path: LoginPath, View: View{Name: "login"}},
	{Path: UnauthorizedPath, View: View{Name: "unauthorized"}},
	{Path: DashboardPath, Guard: &Guard{}},
	{Path: "/admin", Prefix: true, Guard: &Guard{RequiredRoles: []domain.Role{domain.RoleAdmin}},
		View: View{Name: "admin-panel", DataPath: "/api/admin/stats"}},
	{Path: "/reports", Guard: &Guard{MinRole: domain.RoleManager},
		View: View{Name: "reports", DataPath: "/api/manager/reports"}},
	{Path: "/", RedirectTo: DashboardPath},
}

// Lookup finds the route for a client path.
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.matches(path) {
			return r, true
		}
	}
	return Route{}, false
}

// Navigate resolves a client path against the route table and its guard. On Render the
// returned view is the one to show.
func Navigate(path string, state SessionState) (Decision, View) {
	route, ok := Lookup(path)
	if !ok {
		return Decision{Outcome: NotFound}, View{}
	}
	if route.RedirectTo != "" {
		return Decision{Outcome: Redirect, Location: route.RedirectTo}, View{}
	}
	if route.Guard == nil {
		return Decision{Outcome: Render}, route.View
	}

	decision := route.Guard.Decide(state)
	if decision.Outcome != Render {
		return decision, View{}
	}
	if route.Path == DashboardPath {
		return decision, DashboardFor(state.User.Role)
	}
	return decision, route.View
}

// DashboardFor picks the dashboard variant for a role.
func DashboardFor(role domain.Role) View {
	switch role {
	case domain.RoleAdmin:
		return View{Name: "admin-dashboard", DataPath: "/api/admin/stats"}
	case domain.RoleManager:
		return View{Name: "manager-dashboard", DataPath: "/api/manager/team"}
	case domain.RoleStaff:
		return View{Name: "staff-dashboard", DataPath: "/api/staff/tasks"}
	default:
		return View{Name: "unknown-role"}
	}
}
