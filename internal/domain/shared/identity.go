package shared

import "github.com/google/uuid"

// Role is the resolved role of a caller. Authentication happens upstream;
// the engine only consumes the identity and role it is handed.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// CanOverrideLocks reports whether the role may mutate locked documents
func (r Role) CanOverrideLocks() bool {
	return r == RoleAdmin
}

// Identity is the resolved caller identity attached to every engine operation
type Identity struct {
	UserID uuid.UUID
	Name   string
	Role   Role
}

// NewIdentity creates a caller identity
func NewIdentity(userID uuid.UUID, name string, role Role) Identity {
	return Identity{UserID: userID, Name: name, Role: role}
}
