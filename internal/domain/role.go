package domain

// Role enumerates the privilege tiers.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// AllRoles lists every role from most to least privileged.
var AllRoles = []Role{RoleAdmin, RoleManager, RoleStaff}

// ParseRole converts a raw role name into a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleStaff:
		return Role(s), true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Rank returns the privilege level of the role. Higher means more privilege.
// Unknown roles rank 0 and therefore never satisfy a minimum.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleStaff:
		return 1
	default:
		return 0
	}
}

// MeetsMinimum reports whether actual is at or above required.
func MeetsMinimum(actual, required Role) bool {
	if !actual.Valid() || !required.Valid() {
		return false
	}
	return actual.Rank() >= required.Rank()
}

// RoleIn reports whether role is a member of allowed.
func RoleIn(role Role, allowed []Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
