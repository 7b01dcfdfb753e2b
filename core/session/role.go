package session

import (
	"errors"
	"fmt"
	"strings"
)

type Role string

// Roles
const (
	RolePublic   Role = "public"
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
)

var (
	// errors
	ErrRoleNotAllowed = errors.New("not available for this role")
	ErrUnknownRole    = errors.New("unknown role")

	roleAliases = map[string]Role{
		"host":   RolePublic,
		"lektor": RoleLecturer,
	}
)

// ParseRole reads a role name, case-insensitively. "host" and "lektor" are accepted as aliases.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch r := Role(s); r {
	case RolePublic, RoleStudent, RoleLecturer:
		return r, nil
	}
	if r, ok := roleAliases[s]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) String() string { return string(r) }

// RoleError reports a command issued under a role that does not offer it.
type RoleError struct {
	Role Role
}

func (err *RoleError) Error() string {
	return "not available for role " + string(err.Role)
}

func (err *RoleError) Is(target error) bool {
	return target == ErrRoleNotAllowed
}
