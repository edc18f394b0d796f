package models

import "fmt"

// Role is the access tier assigned to a user account. Roles form a total
// order: every role inherits the permissions of the roles below it.
type Role string

const (
	RoleUser    Role = "USER"
	RoleEditor  Role = "EDITOR"
	RoleManager Role = "MANAGER"
	RoleOwner   Role = "OWNER"
)

// roleLevels is the single source of truth for the role order.
var roleLevels = map[Role]int{
	RoleUser:    0,
	RoleEditor:  1,
	RoleManager: 2,
	RoleOwner:   3,
}

// ParseRole validates a raw role value against the closed set of roles.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if _, ok := roleLevels[role]; !ok {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}

// Valid reports whether the role is a member of the defined order.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the position of the role in the total order.
// Unknown roles map below USER so they never pass a threshold check.
func (r Role) Level() int {
	if level, ok := roleLevels[r]; ok {
		return level
	}
	return -1
}

// Meets reports whether the role satisfies the given minimum threshold.
func (r Role) Meets(min Role) bool {
	return r.Valid() && r.Level() >= min.Level()
}
