package domain

import "strings"

// ID is used across domain entities.
type ID int64

// Role is an admin's permission level.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
)

// Roles lists every assignable role, most privileged first.
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleEditor}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// Principal is the authenticated admin attached to a request.
type Principal struct {
	AdminID  ID     `json:"admin_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
