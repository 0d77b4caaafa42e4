package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/cache"
	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
	"github.com/rezabhm/Gold-Online-Store/internal/repository"
)

const (
	activePriceCacheKey = "gold_price:active"
	activePriceCacheTTL = 30 * time.Second
)

// GoldPriceFields are the writable fields of a price record.
type GoldPriceFields struct {
	Date            *time.Time
	SalePrice       decimal.Decimal
	PriceDifference decimal.Decimal
	TotalGoldStock  decimal.Decimal
	StockStatus     bool
	Active          bool
}

// GoldPriceService manages the price ledger. Every operation, reads
// included, is admin-only; customers never see price records directly.
type GoldPriceService interface {
	Create(ctx context.Context, caller authz.Caller, fields GoldPriceFields) (*model.GoldPrice, error)
	Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*model.GoldPrice, error)
	Update(ctx context.Context, caller authz.Caller, id uuid.UUID, fields GoldPriceFields) (*model.GoldPrice, error)
	Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error
	List(ctx context.Context, caller authz.Caller, search string) ([]model.GoldPrice, error)
	// Active returns the current active price, or nil when none is active.
	Active(ctx context.Context) (*model.GoldPrice, error)
}

type goldPriceService struct {
	repo  repository.GoldPriceRepository
	cache *cache.Client
}

// NewGoldPriceService creates a new gold price service.
func NewGoldPriceService(repo repository.GoldPriceRepository, cache *cache.Client) GoldPriceService {
	return &goldPriceService{repo: repo, cache: cache}
}

func validatePriceFields(fields GoldPriceFields) error {
	if fields.SalePrice.IsNegative() {
		return errors.NewValidationError("sale_price", "sale price cannot be negative")
	}
	if fields.PriceDifference.IsNegative() {
		return errors.NewValidationError("price_difference", "price difference cannot be negative")
	}
	if fields.TotalGoldStock.IsNegative() {
		return errors.NewValidationError("total_gold_stock", "total gold stock cannot be negative")
	}
	return nil
}

// Create validates and inserts a price record. Activating it deactivates
// every other record inside the repository transaction.
func (s *goldPriceService) Create(ctx context.Context, caller authz.Caller, fields GoldPriceFields) (*model.GoldPrice, error) {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return nil, err
	}
	if err := validatePriceFields(fields); err != nil {
		return nil, err
	}

	price := &model.GoldPrice{
		SalePrice:       fields.SalePrice,
		PriceDifference: fields.PriceDifference,
		TotalGoldStock:  fields.TotalGoldStock,
		StockStatus:     fields.StockStatus,
		Active:          fields.Active,
	}
	if fields.Date != nil {
		price.Date = *fields.Date
	}

	if err := s.repo.Create(ctx, price); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, activePriceCacheKey)
	return price, nil
}

// Get retrieves a price record.
func (s *goldPriceService) Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*model.GoldPrice, error) {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return nil, err
	}
	price, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return price, nil
}

// Update validates and saves a price record.
func (s *goldPriceService) Update(ctx context.Context, caller authz.Caller, id uuid.UUID, fields GoldPriceFields) (*model.GoldPrice, error) {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return nil, err
	}
	price, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	if err := validatePriceFields(fields); err != nil {
		return nil, err
	}

	price.SalePrice = fields.SalePrice
	price.PriceDifference = fields.PriceDifference
	price.TotalGoldStock = fields.TotalGoldStock
	price.StockStatus = fields.StockStatus
	price.Active = fields.Active
	if fields.Date != nil {
		price.Date = *fields.Date
	}

	if err := s.repo.Save(ctx, price); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, activePriceCacheKey)
	return price, nil
}

// Delete removes a price record.
func (s *goldPriceService) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, activePriceCacheKey)
	return nil
}

// List lists price records, optionally filtered on the date string.
func (s *goldPriceService) List(ctx context.Context, caller authz.Caller, search string) ([]model.GoldPrice, error) {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, search)
}

// Active returns the active price with a short Redis cache in front. A
// nil price with nil error means no price is currently active.
func (s *goldPriceService) Active(ctx context.Context) (*model.GoldPrice, error) {
	if data, _ := s.cache.Get(ctx, activePriceCacheKey); data != nil {
		var cached model.GoldPrice
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	price, err := s.repo.FindActive(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	if payload, err := json.Marshal(price); err == nil {
		_ = s.cache.Set(ctx, activePriceCacheKey, payload, activePriceCacheTTL)
	}
	return price, nil
}
