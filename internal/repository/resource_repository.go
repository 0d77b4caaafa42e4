package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

// ResourceRepository defines the persistence operations shared by every
// owned ledger resource (payments, gold trades, withdrawal requests).
// One generic implementation backs all five families.
type ResourceRepository[T any] interface {
	Create(ctx context.Context, rec *T) error
	Save(ctx context.Context, rec *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string) ([]T, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status string) ([]T, error)
}

type resourceRepository[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewResourceRepository creates a repository for one resource family.
// Preloads name the relations embedded in responses, e.g. "User".
func NewResourceRepository[T any](db *gorm.DB, preloads ...string) ResourceRepository[T] {
	return &resourceRepository[T]{db: db, preloads: preloads}
}

func (r *resourceRepository[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// Create inserts a record without touching its associations.
func (r *resourceRepository[T]) Create(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

// Save updates a record without touching its associations.
func (r *resourceRepository[T]) Save(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error
}

// FindByID finds a record by ID with its relations preloaded.
func (r *resourceRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	if err := r.query(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a record.
func (r *resourceRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error
}

// List lists all records, optionally substring-filtered on owner username
// or status.
func (r *resourceRepository[T]) List(ctx context.Context, search string) ([]T, error) {
	q := r.query(ctx)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("status LIKE ? OR user_id IN (?)",
			like, r.db.Model(&model.User{}).Select("id").Where("username LIKE ?", like))
	}
	var recs []T
	if err := q.Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// ListByOwner lists the given owner's records, optionally filtered on status.
func (r *resourceRepository[T]) ListByOwner(ctx context.Context, ownerID uuid.UUID, status string) ([]T, error) {
	q := r.query(ctx).Where("user_id = ?", ownerID)
	if status != "" {
		q = q.Where("status LIKE ?", "%"+status+"%")
	}
	var recs []T
	if err := q.Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
