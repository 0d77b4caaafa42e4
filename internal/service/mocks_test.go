package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) CreateWithWallet(ctx context.Context, user *model.User, wallet *model.Wallet) error {
	args := m.Called(ctx, user, wallet)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]model.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ReferenceCount(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *model.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) Save(ctx context.Context, wallet *model.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWalletRepository) List(ctx context.Context, search string) ([]model.Wallet, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wallet), args.Error(1)
}

// MockGoldPriceRepository is a mock implementation of GoldPriceRepository.
type MockGoldPriceRepository struct {
	mock.Mock
}

func (m *MockGoldPriceRepository) Create(ctx context.Context, price *model.GoldPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockGoldPriceRepository) Save(ctx context.Context, price *model.GoldPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockGoldPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GoldPrice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoldPrice), args.Error(1)
}

func (m *MockGoldPriceRepository) FindActive(ctx context.Context) (*model.GoldPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoldPrice), args.Error(1)
}

func (m *MockGoldPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGoldPriceRepository) List(ctx context.Context, search string) ([]model.GoldPrice, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GoldPrice), args.Error(1)
}

// MockResourceRepository is a mock implementation of ResourceRepository
// for one resource family.
type MockResourceRepository[T any] struct {
	mock.Mock
}

func (m *MockResourceRepository[T]) Create(ctx context.Context, rec *T) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockResourceRepository[T]) Save(ctx context.Context, rec *T) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockResourceRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockResourceRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResourceRepository[T]) List(ctx context.Context, search string) ([]T, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockResourceRepository[T]) ListByOwner(ctx context.Context, ownerID uuid.UUID, status string) ([]T, error) {
	args := m.Called(ctx, ownerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, username string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockGoldPriceService is a mock implementation of GoldPriceService.
type MockGoldPriceService struct {
	mock.Mock
}

func (m *MockGoldPriceService) Create(ctx context.Context, caller authz.Caller, fields GoldPriceFields) (*model.GoldPrice, error) {
	args := m.Called(ctx, caller, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoldPrice), args.Error(1)
}

func (m *MockGoldPriceService) Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*model.GoldPrice, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoldPrice), args.Error(1)
}

func (m *MockGoldPriceService) Update(ctx context.Context, caller authz.Caller, id uuid.UUID, fields GoldPriceFields) (*model.GoldPrice, error) {
	args := m.Called(ctx, caller, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoldPrice), args.Error(1)
}

func (m *MockGoldPriceService) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockGoldPriceService) List(ctx context.Context, caller authz.Caller, search string) ([]model.GoldPrice, error) {
	args := m.Called(ctx, caller, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GoldPrice), args.Error(1)
}

func (m *MockGoldPriceService) Active(ctx context.Context) (*model.GoldPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoldPrice), args.Error(1)
}
