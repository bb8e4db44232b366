package actor

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

// Role is the capability tag carried by every caller. Identity itself is
// owned by an external provider; the engine only checks the role against the
// transition table.
type Role string

const (
	RoleCustomer    Role = "customer"
	RoleManager     Role = "manager"
	RoleTransporter Role = "transporter"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleManager, RoleTransporter:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor identifies who is attempting an action. It is passed explicitly into
// every command; nothing below the handler layer reads ambient identity.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func New(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

func (a Actor) Is(role Role) bool {
	return a.Role == role
}
