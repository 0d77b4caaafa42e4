package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
	"github.com/rezabhm/Gold-Online-Store/internal/repository"
)

// WalletFields are the writable balance fields of a wallet.
type WalletFields struct {
	MoneyStock decimal.Decimal
	GoldStock  decimal.Decimal
}

// WalletService manages wallets and their valuation. Valuation is
// computed fresh on every read against the active gold price and is
// never persisted.
type WalletService interface {
	Create(ctx context.Context, caller authz.Caller, ownerID uuid.UUID, fields WalletFields) (*model.Wallet, error)
	Get(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID) (*model.Wallet, error)
	Update(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID, fields WalletFields) (*model.Wallet, error)
	Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error
	List(ctx context.Context, caller authz.Caller, scope authz.Scope, search string) ([]model.Wallet, error)
}

type walletService struct {
	repo   repository.WalletRepository
	users  repository.UserRepository
	prices GoldPriceService
}

// NewWalletService creates a new wallet service.
func NewWalletService(repo repository.WalletRepository, users repository.UserRepository, prices GoldPriceService) WalletService {
	return &walletService{repo: repo, users: users, prices: prices}
}

// ValidateWalletFields bounds-checks balances against zero and the
// sanity ceilings.
func ValidateWalletFields(fields WalletFields) error {
	if fields.MoneyStock.IsNegative() {
		return errors.NewValidationError("money_stock", "money stock cannot be negative")
	}
	if fields.GoldStock.IsNegative() {
		return errors.NewValidationError("gold_stock", "gold stock cannot be negative")
	}
	if fields.MoneyStock.GreaterThan(model.MaxMoneyAmount) {
		return errors.NewValidationError("money_stock", "money stock exceeds maximum allowed value")
	}
	if fields.GoldStock.GreaterThan(model.MaxGoldAmount) {
		return errors.NewValidationError("gold_stock", "gold stock exceeds maximum allowed value")
	}
	return nil
}

// decorate fills the derived valuation fields on a wallet.
func (s *walletService) decorate(ctx context.Context, wallet *model.Wallet) error {
	price, err := s.prices.Active(ctx)
	if err != nil {
		return err
	}
	wallet.TotalValue = wallet.TotalValueAt(price)
	wallet.LatestGoldPrice = price
	return nil
}

// Create creates a wallet for the given owner. Admin-only; each user may
// hold at most one wallet.
func (s *walletService) Create(ctx context.Context, caller authz.Caller, ownerID uuid.UUID, fields WalletFields) (*model.Wallet, error) {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return nil, err
	}
	if err := ValidateWalletFields(fields); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewValidationError("user", "user does not exist")
		}
		return nil, err
	}
	if _, err := s.repo.FindByUserID(ctx, ownerID); err == nil {
		return nil, errors.ErrWalletAlreadyExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	wallet := &model.Wallet{
		UserID:     ownerID,
		MoneyStock: fields.MoneyStock,
		GoldStock:  fields.GoldStock,
	}
	if err := s.repo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Get retrieves a wallet with its valuation. The scope check runs
// before the lookup so a customer on the admin surface always gets 403,
// existent id or not.
func (s *walletService) Get(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID) (*model.Wallet, error) {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return nil, err
	}
	wallet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrWalletNotFound
		}
		return nil, err
	}
	if err := authz.AuthorizeRecord(caller, scope, wallet.UserID); err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// Update bounds-checks and saves wallet balances. Balances are only ever
// changed through this call; transaction status edits never touch them.
func (s *walletService) Update(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID, fields WalletFields) (*model.Wallet, error) {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return nil, err
	}
	wallet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrWalletNotFound
		}
		return nil, err
	}
	if err := authz.AuthorizeRecord(caller, scope, wallet.UserID); err != nil {
		return nil, err
	}
	if err := ValidateWalletFields(fields); err != nil {
		return nil, err
	}

	wallet.MoneyStock = fields.MoneyStock
	wallet.GoldStock = fields.GoldStock
	if err := s.repo.Save(ctx, wallet); err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// Delete removes a wallet. Admin-only.
func (s *walletService) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrWalletNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List lists wallets with valuations. Admin scope lists all wallets with
// an optional owner-username search; self scope lists the caller's own.
func (s *walletService) List(ctx context.Context, caller authz.Caller, scope authz.Scope, search string) ([]model.Wallet, error) {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return nil, err
	}

	var (
		wallets []model.Wallet
		err     error
	)
	if scope == authz.ScopeAdmin {
		wallets, err = s.repo.List(ctx, search)
	} else {
		wallets, err = s.repo.ListByOwner(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}

	// One active-price lookup for the whole page.
	price, err := s.prices.Active(ctx)
	if err != nil {
		return nil, err
	}
	for i := range wallets {
		wallets[i].TotalValue = wallets[i].TotalValueAt(price)
		wallets[i].LatestGoldPrice = price
	}
	return wallets, nil
}
