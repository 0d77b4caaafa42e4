package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	CreateWithWallet(ctx context.Context, user *model.User, wallet *model.Wallet) error
	Save(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string) ([]model.User, error)
	ReferenceCount(ctx context.Context, id uuid.UUID) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// CreateWithWallet inserts a user and their wallet in one transaction.
// A failed wallet insert must never leave a wallet-less account behind.
func (r *userRepository) CreateWithWallet(ctx context.Context, user *model.User, wallet *model.Wallet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		wallet.UserID = user.ID
		return tx.Omit(clause.Associations).Create(wallet).Error
	})
}

// Save updates an existing user.
func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

// List lists users, optionally substring-filtered on username or email.
func (r *userRepository) List(ctx context.Context, search string) ([]model.User, error) {
	q := r.db.WithContext(ctx)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	var users []model.User
	if err := q.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ReferenceCount counts transaction and request records still pointing at
// the user. A non-zero count blocks deletion.
func (r *userRepository) ReferenceCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var total int64
	for _, m := range []interface{}{
		&model.PaymentTransaction{},
		&model.GoldSaleTransaction{},
		&model.GoldPurchaseTransaction{},
		&model.MoneyWithdrawalRequest{},
		&model.GoldWithdrawalRequest{},
	} {
		var count int64
		if err := r.db.WithContext(ctx).Model(m).Where("user_id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}
