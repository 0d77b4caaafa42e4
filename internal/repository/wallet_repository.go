package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

// WalletRepository defines wallet persistence operations.
type WalletRepository interface {
	Create(ctx context.Context, wallet *model.Wallet) error
	Save(ctx context.Context, wallet *model.Wallet) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Wallet, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string) ([]model.Wallet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Wallet, error)
}

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository.
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

// Create creates a new wallet.
func (r *walletRepository) Create(ctx context.Context, wallet *model.Wallet) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(wallet).Error
}

// Save updates an existing wallet without touching the owning user row.
func (r *walletRepository) Save(ctx context.Context, wallet *model.Wallet) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(wallet).Error
}

// FindByID finds a wallet by ID with its owner preloaded.
func (r *walletRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Wallet, error) {
	var wallet model.Wallet
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// FindByUserID finds the wallet owned by the given user.
func (r *walletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	var wallet model.Wallet
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Delete removes a wallet.
func (r *walletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Wallet{}, "id = ?", id).Error
}

// List lists wallets, optionally substring-filtered on the owner username.
func (r *walletRepository) List(ctx context.Context, search string) ([]model.Wallet, error) {
	q := r.db.WithContext(ctx).Preload("User")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("user_id IN (?)", r.db.Model(&model.User{}).Select("id").Where("username LIKE ?", like))
	}
	var wallets []model.Wallet
	if err := q.Order("created_at").Find(&wallets).Error; err != nil {
		return nil, err
	}
	return wallets, nil
}

// ListByOwner lists the wallets owned by the given user. Uniqueness makes
// this zero or one record.
func (r *walletRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Wallet, error) {
	var wallets []model.Wallet
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", ownerID).Find(&wallets).Error; err != nil {
		return nil, err
	}
	return wallets, nil
}
