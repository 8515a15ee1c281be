package reconcile

import (
	"fmt"

	"rest-mapper/internal/mapping"
	"rest-mapper/internal/schema"
)

// Role names a side of the connection.
type Role int

const (
	// RoleSource is the providing REST API.
	RoleSource Role = iota
	// RoleTarget is the consuming REST Client.
	RoleTarget
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleTarget:
		return "target"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Other returns the opposite role.
func (r Role) Other() Role {
	if r == RoleSource {
		return RoleTarget
	}

	return RoleSource
}

// Effect is a change the host must apply outside the State.
type Effect interface {
	effect()
}

// SetMethod stores Method under ID in the resource of Role.
type SetMethod struct {
	Role   Role
	ID     string
	Method schema.Method
}

// DeleteMethod removes ID from the resource of Role.
type DeleteMethod struct {
	Role Role
	ID   string
}

// AddEntities adds entities to the entity set of Role.
type AddEntities struct {
	Role     Role
	Entities []schema.Entity
}

// MappingChanged carries the new persisted mapping. Each state-changing
// transition ends with exactly one MappingChanged.
type MappingChanged struct {
	Mapping *mapping.Connection
}

func (SetMethod) effect()      {}
func (DeleteMethod) effect()   {}
func (AddEntities) effect()    {}
func (MappingChanged) effect() {}
