package model

// Role is the closed set of participant kinds. Handlers dispatch on it instead
// of comparing raw strings from the identity token.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleChef     Role = "chef"
	RoleManager  Role = "manager"
	RoleDriver   Role = "driver"
)

// ParseRole maps an external role claim onto the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleChef, RoleManager, RoleDriver:
		return Role(s), true
	}
	return "", false
}
