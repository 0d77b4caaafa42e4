package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
	"github.com/rezabhm/Gold-Online-Store/internal/repository"
)

// resourcePtr constrains P to a pointer to T that behaves as a ledger resource.
type resourcePtr[T any] interface {
	*T
	model.Resource
}

// SaveHook runs before a record is persisted. prev holds the stored
// state on update and is nil on create, so hooks can limit a check to
// the fields the caller actually changed.
type SaveHook[T any] func(ctx context.Context, prev, rec *T) error

// ResourceService is the single generic implementation behind all five
// transaction/request families. Handlers pass the route scope; the
// ownership policy in authz does the rest.
type ResourceService[T any] interface {
	Create(ctx context.Context, caller authz.Caller, scope authz.Scope, rec *T) (*T, error)
	Get(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID) (*T, error)
	Update(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID, apply func(rec *T) error) (*T, error)
	Delete(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID) error
	List(ctx context.Context, caller authz.Caller, scope authz.Scope, search string) ([]T, error)
}

type resourceService[T any, P resourcePtr[T]] struct {
	repo       repository.ResourceRepository[T]
	users      repository.UserRepository
	beforeSave SaveHook[T]
}

// NewResourceService creates the service for one resource family. The
// hook may be nil.
func NewResourceService[T any, P resourcePtr[T]](
	repo repository.ResourceRepository[T],
	users repository.UserRepository,
	beforeSave SaveHook[T],
) ResourceService[T] {
	return &resourceService[T, P]{repo: repo, users: users, beforeSave: beforeSave}
}

// Create persists a new record. On the self-scoped surface the owner is
// always the caller; the handler has already rejected caller-supplied
// owner fields with a validation error.
func (s *resourceService[T, P]) Create(ctx context.Context, caller authz.Caller, scope authz.Scope, rec *T) (*T, error) {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return nil, err
	}

	if scope == authz.ScopeSelf {
		P(rec).SetOwner(caller.ID)
	}
	ownerID := P(rec).OwnerID()
	if ownerID == uuid.Nil {
		return nil, errors.NewValidationError("user", "user is required")
	}
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewValidationError("user", "user does not exist")
		}
		return nil, err
	}

	if s.beforeSave != nil {
		if err := s.beforeSave(ctx, nil, rec); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	// Reload so the response carries the preloaded relations.
	created, err := s.repo.FindByID(ctx, P(rec).RecordID())
	if err != nil {
		return nil, err
	}
	P(created).Present()
	return created, nil
}

// Get retrieves a record. Ownership is re-checked per record: on the
// self-scoped surface a foreign record fails with 403, an absent id with 404.
func (s *resourceService[T, P]) Get(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID) (*T, error) {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return nil, err
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	if err := authz.AuthorizeRecord(caller, scope, P(rec).OwnerID()); err != nil {
		return nil, err
	}
	P(rec).Present()
	return rec, nil
}

// Update applies submitted fields to an existing record and saves it.
// The apply callback returns field-keyed validation errors.
func (s *resourceService[T, P]) Update(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID, apply func(rec *T) error) (*T, error) {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return nil, err
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	if err := authz.AuthorizeRecord(caller, scope, P(rec).OwnerID()); err != nil {
		return nil, err
	}

	prev := *rec
	if err := apply(rec); err != nil {
		return nil, err
	}
	// An admin payload may reassign the owner; an unknown owner is a
	// field error here, not a foreign-key failure at save time.
	if newOwner := P(rec).OwnerID(); newOwner != P(&prev).OwnerID() {
		if _, err := s.users.FindByID(ctx, newOwner); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.NewValidationError("user", "user does not exist")
			}
			return nil, err
		}
	}
	if s.beforeSave != nil {
		if err := s.beforeSave(ctx, &prev, rec); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	P(updated).Present()
	return updated, nil
}

// Delete removes a record after the same ownership check as Get.
func (s *resourceService[T, P]) Delete(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID) error {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return err
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	if err := authz.AuthorizeRecord(caller, scope, P(rec).OwnerID()); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List returns all records on the admin surface (searchable by owner
// username or status) and only the caller's records on the self surface
// (filterable by status).
func (s *resourceService[T, P]) List(ctx context.Context, caller authz.Caller, scope authz.Scope, search string) ([]T, error) {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return nil, err
	}

	var (
		recs []T
		err  error
	)
	if scope == authz.ScopeAdmin {
		recs, err = s.repo.List(ctx, search)
	} else {
		recs, err = s.repo.ListByOwner(ctx, caller.ID, search)
	}
	if err != nil {
		return nil, err
	}
	for i := range recs {
		P(&recs[i]).Present()
	}
	return recs, nil
}

// RequireActivePrice is the save hook for gold transactions: the
// referenced price must exist and be active when the reference is set.
// A price that goes inactive later never blocks edits on records that
// keep pointing at it, so status changes on old transactions still work.
func RequireActivePrice[T any, P interface {
	*T
	PriceID() uuid.UUID
}](prices repository.GoldPriceRepository) SaveHook[T] {
	return func(ctx context.Context, prev, rec *T) error {
		if prev != nil && P(prev).PriceID() == P(rec).PriceID() {
			return nil
		}
		price, err := prices.FindByID(ctx, P(rec).PriceID())
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewValidationError("gold_price", "gold price does not exist")
			}
			return err
		}
		if !price.Active {
			return errors.ErrPriceNotActive
		}
		return nil
	}
}
