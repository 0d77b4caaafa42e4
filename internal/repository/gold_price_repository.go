package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

// GoldPriceRepository defines gold price persistence operations. Create
// and Save run inside a database transaction so the single-active-price
// invariant holds even under concurrent activations.
type GoldPriceRepository interface {
	Create(ctx context.Context, price *model.GoldPrice) error
	Save(ctx context.Context, price *model.GoldPrice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.GoldPrice, error)
	FindActive(ctx context.Context) (*model.GoldPrice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string) ([]model.GoldPrice, error)
}

type goldPriceRepository struct {
	db *gorm.DB
}

// NewGoldPriceRepository creates a new gold price repository.
func NewGoldPriceRepository(db *gorm.DB) GoldPriceRepository {
	return &goldPriceRepository{db: db}
}

// Create inserts a price and, when it is active, deactivates every other
// price in the same transaction.
func (r *goldPriceRepository) Create(ctx context.Context, price *model.GoldPrice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(price).Error; err != nil {
			return err
		}
		return deactivateOthers(tx, price)
	})
}

// Save updates a price and, when it is active, deactivates every other
// price in the same transaction.
func (r *goldPriceRepository) Save(ctx context.Context, price *model.GoldPrice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(price).Error; err != nil {
			return err
		}
		return deactivateOthers(tx, price)
	})
}

func deactivateOthers(tx *gorm.DB, price *model.GoldPrice) error {
	if !price.Active {
		return nil
	}
	return tx.Model(&model.GoldPrice{}).
		Where("active = ? AND id <> ?", true, price.ID).
		Update("active", false).Error
}

// FindByID finds a price by ID.
func (r *goldPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GoldPrice, error) {
	var price model.GoldPrice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&price).Error; err != nil {
		return nil, err
	}
	return &price, nil
}

// FindActive returns the active price. More than one active row should
// not occur; the most recent date wins if it somehow does.
func (r *goldPriceRepository) FindActive(ctx context.Context) (*model.GoldPrice, error) {
	var price model.GoldPrice
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("date DESC").First(&price).Error; err != nil {
		return nil, err
	}
	return &price, nil
}

// Delete removes a price.
func (r *goldPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GoldPrice{}, "id = ?", id).Error
}

// List lists prices, optionally free-text-filtered on the date string.
func (r *goldPriceRepository) List(ctx context.Context, search string) ([]model.GoldPrice, error) {
	q := r.db.WithContext(ctx)
	if search != "" {
		q = q.Where("CAST(date AS CHAR) LIKE ?", "%"+search+"%")
	}
	var prices []model.GoldPrice
	if err := q.Order("date").Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}
