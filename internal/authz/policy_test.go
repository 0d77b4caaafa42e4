package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

func TestAuthorizeScope(t *testing.T) {
	admin := Caller{ID: uuid.New(), Username: "admin", Role: model.RoleAdmin}
	customer := Caller{ID: uuid.New(), Username: "alice", Role: model.RoleCustomer}

	tests := []struct {
		name          string
		caller        Caller
		scope         Scope
		expectedError error
	}{
		{name: "admin on admin scope", caller: admin, scope: ScopeAdmin, expectedError: nil},
		{name: "admin on self scope", caller: admin, scope: ScopeSelf, expectedError: nil},
		{name: "customer on admin scope", caller: customer, scope: ScopeAdmin, expectedError: errors.ErrForbidden},
		{name: "customer on self scope", caller: customer, scope: ScopeSelf, expectedError: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeScope(tt.caller, tt.scope)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeRecord(t *testing.T) {
	admin := Caller{ID: uuid.New(), Username: "admin", Role: model.RoleAdmin}
	customer := Caller{ID: uuid.New(), Username: "alice", Role: model.RoleCustomer}
	other := uuid.New()

	tests := []struct {
		name          string
		caller        Caller
		scope         Scope
		ownerID       uuid.UUID
		expectedError error
	}{
		{name: "admin touches any record on admin scope", caller: admin, scope: ScopeAdmin, ownerID: other, expectedError: nil},
		{name: "customer touches own record on self scope", caller: customer, scope: ScopeSelf, ownerID: customer.ID, expectedError: nil},
		{name: "customer touches foreign record on self scope", caller: customer, scope: ScopeSelf, ownerID: other, expectedError: errors.ErrNotOwner},
		{name: "customer on admin scope fails before ownership", caller: customer, scope: ScopeAdmin, ownerID: customer.ID, expectedError: errors.ErrForbidden},
		{name: "admin touches foreign record on self scope", caller: admin, scope: ScopeSelf, ownerID: other, expectedError: errors.ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeRecord(tt.caller, tt.scope, tt.ownerID)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeRoleChange(t *testing.T) {
	admin := Caller{ID: uuid.New(), Role: model.RoleAdmin}
	customer := Caller{ID: uuid.New(), Role: model.RoleCustomer}

	assert.NoError(t, AuthorizeRoleChange(admin, model.RoleAdmin))
	assert.NoError(t, AuthorizeRoleChange(admin, model.RoleCustomer))
	assert.NoError(t, AuthorizeRoleChange(customer, model.RoleCustomer))
	assert.Equal(t, errors.ErrRoleEscalation, AuthorizeRoleChange(customer, model.RoleAdmin))
}
