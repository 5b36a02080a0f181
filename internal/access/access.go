// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

// Package access provides role-based authorization for FreightDesk.
//
// Permissions use "resource:action" string format:
//   - "client:read", "client:write", "package:read"
//   - "client:*" grants every action on clients
//
// Staff roles map to fixed permission sets. Authorization is deny by
// default: an unknown role or an unmatched permission is a denial.
package access

import (
	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/freightdesk/freightdesk/internal/auth"
)

// Authorizer checks whether a role may perform an action.
type Authorizer interface {
	// Allowed returns true if the role grants the permission.
	// Permission strings use "resource:action" format.
	Allowed(role auth.Role, permission string) bool
}

// DefaultRolePermissions returns the permission sets for the built-in
// staff roles. Patterns are glob-compiled with ':' as separator.
func DefaultRolePermissions() map[auth.Role][]string {
	return map[auth.Role][]string{
		auth.RoleEmployee: {
			"dashboard:employee",
			"client:read",
			"package:read",
		},
		auth.RoleManager: {
			"dashboard:manager",
			"client:*",
			"recipient:*",
			"package:*",
			"inventory:create",
			"metrics:read",
		},
		auth.RoleSupervisor: {
			"dashboard:supervisor",
			"user:create",
			"user:read",
		},
	}
}

// compiledPermission holds a permission pattern and its compiled glob.
type compiledPermission struct {
	pattern string
	glob    glob.Glob
}

// Guard implements Authorizer with static role definitions.
//
// Thread-safety: roles is immutable after construction and requires no
// synchronization.
type Guard struct {
	roles map[auth.Role][]compiledPermission
}

// NewGuard creates a Guard with the default role permissions.
//
// Panics if the default patterns contain invalid glob syntax
// (configuration bug).
func NewGuard() *Guard {
	g, err := NewGuardWithRoles(DefaultRolePermissions())
	if err != nil {
		// DefaultRolePermissions patterns are hardcoded and should always
		// be valid. A compile failure is a code bug that should fail fast.
		panic("invalid permission pattern in DefaultRolePermissions: " + err.Error())
	}
	return g
}

// NewGuardWithRoles creates a Guard with custom role permission sets.
// Returns an error if any pattern fails to compile.
func NewGuardWithRoles(roles map[auth.Role][]string) (*Guard, error) {
	compiled := make(map[auth.Role][]compiledPermission, len(roles))
	for role, perms := range roles {
		cps := make([]compiledPermission, 0, len(perms))
		for _, p := range perms {
			// ':' separates resource from action in permission patterns
			g, err := glob.Compile(p, ':')
			if err != nil {
				return nil, oops.In("access").
					Code("INVALID_PERMISSION_PATTERN").
					With("role", string(role)).
					With("pattern", p).
					Wrap(err)
			}
			cps = append(cps, compiledPermission{pattern: p, glob: g})
		}
		compiled[role] = cps
	}
	return &Guard{roles: compiled}, nil
}

// Allowed implements Authorizer.
func (g *Guard) Allowed(role auth.Role, permission string) bool {
	if role == "" || permission == "" {
		return false
	}
	perms, ok := g.roles[role]
	if !ok {
		return false
	}
	for _, perm := range perms {
		if perm.glob.Match(permission) {
			return true
		}
	}
	return false
}

// Permissions returns the raw permission patterns for a role, or nil
// for an unknown role. Useful for dashboards and diagnostics.
func (g *Guard) Permissions(role auth.Role) []string {
	perms, ok := g.roles[role]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = p.pattern
	}
	return out
}

var _ Authorizer = (*Guard)(nil)
