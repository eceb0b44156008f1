package user

// Role is the caller role attached to every authenticated request.
// It is the single definition shared by all layers; collaborators must not
// declare their own copies.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Priority controls tie-breaking in downstream scheduling tooling; the API
// only stores it.
type Priority string

const (
	PriorityStandard Priority = "standard"
	PriorityElevated Priority = "priority"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p == PriorityStandard || p == PriorityElevated
}

// Identity describes the authenticated caller as resolved by the auth
// middleware: who is acting and with which role.
type Identity struct {
	UserID string
	Role   Role
}
