// Package authz holds the ownership policy applied uniformly to every
// resource family. Two caller classes exist, admin and customer, and two
// route scopes, admin-scoped and self-scoped. Anonymous callers never
// reach this package; the JWT middleware rejects them with 401 first.
package authz

import (
	"github.com/google/uuid"

	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

// Scope identifies which API surface a request came through.
type Scope string

const (
	// ScopeAdmin is the unrestricted surface under /admin.
	ScopeAdmin Scope = "admin"
	// ScopeSelf is the surface restricted to the caller's own records.
	ScopeSelf Scope = "self"
)

// Caller is the authenticated identity resolved from the access token.
type Caller struct {
	ID       uuid.UUID
	Username string
	Role     model.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Role == model.RoleAdmin }

// AuthorizeScope decides whether the caller may use the given surface at
// all. Customers get ErrForbidden on every admin-scoped operation.
func AuthorizeScope(caller Caller, scope Scope) error {
	if scope == ScopeAdmin && !caller.IsAdmin() {
		return errors.ErrForbidden
	}
	return nil
}

// AuthorizeRecord decides whether the caller may touch a record owned by
// ownerID. On the self-scoped surface an owner mismatch fails with
// ErrNotOwner before any other logic runs.
func AuthorizeRecord(caller Caller, scope Scope, ownerID uuid.UUID) error {
	if err := AuthorizeScope(caller, scope); err != nil {
		return err
	}
	if scope == ScopeSelf && ownerID != caller.ID {
		return errors.ErrNotOwner
	}
	return nil
}

// AuthorizeRoleChange rejects a non-admin caller granting themselves the
// admin role through their own user record.
func AuthorizeRoleChange(caller Caller, newRole model.Role) error {
	if !caller.IsAdmin() && newRole == model.RoleAdmin {
		return errors.ErrRoleEscalation
	}
	return nil
}
