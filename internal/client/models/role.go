package models

import (
	"errors"
	"fmt"
)

// Role is the closed set of application roles. The zero value RoleNone
// means "no role" (anonymous or unknown).
type Role uint8

const (
	RoleNone Role = iota
	RoleCustomer
	RoleAgent
	RoleAdmin
)

// Wire names used by the backend API.
const (
	wireCustomer = "CLIENT"
	wireAgent    = "AGENT_BANCAIRE"
	wireAdmin    = "ADMIN"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists every assignable role.
var Roles = []Role{RoleCustomer, RoleAgent, RoleAdmin}

// ParseRole maps a backend wire name to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case wireCustomer:
		return RoleCustomer, nil
	case wireAgent:
		return RoleAgent, nil
	case wireAdmin:
		return RoleAdmin, nil
	default:
		return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// String returns the backend wire name, or "" for RoleNone.
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return wireCustomer
	case RoleAgent:
		return wireAgent
	case RoleAdmin:
		return wireAdmin
	default:
		return ""
	}
}

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAgent || r == RoleAdmin
}

// MarshalText encodes RoleNone as "" so snapshots without a role still
// serialize.
func (r Role) MarshalText() ([]byte, error) {
	if r == RoleNone {
		return []byte{}, nil
	}
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, r)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*r = RoleNone
		return nil
	}
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// In reports whether r is one of roles.
func (r Role) In(roles []Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}
