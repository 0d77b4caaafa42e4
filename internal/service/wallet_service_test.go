package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

func TestWalletService_Get_Valuation(t *testing.T) {
	ownerID := uuid.New()
	walletID := uuid.New()
	wallet := &model.Wallet{
		ID:         walletID,
		UserID:     ownerID,
		MoneyStock: decimal.RequireFromString("1000"),
		GoldStock:  decimal.RequireFromString("10"),
	}
	caller := authz.Caller{ID: ownerID, Username: "alice", Role: model.RoleCustomer}

	t.Run("valuation uses the active sale price", func(t *testing.T) {
		mockRepo := new(MockWalletRepository)
		mockUsers := new(MockUserRepository)
		mockPrices := new(MockGoldPriceService)
		mockRepo.On("FindByID", mock.Anything, walletID).Return(wallet, nil)
		mockPrices.On("Active", mock.Anything).Return(&model.GoldPrice{
			SalePrice: decimal.RequireFromString("2500000"),
			Active:    true,
		}, nil)

		service := NewWalletService(mockRepo, mockUsers, mockPrices)
		got, err := service.Get(context.Background(), caller, authz.ScopeSelf, walletID)

		assert.NoError(t, err)
		// 1000 + 10 * 2,500,000
		assert.True(t, got.TotalValue.Equal(decimal.RequireFromString("25001000")),
			"total value = %s", got.TotalValue)
		assert.NotNil(t, got.LatestGoldPrice)
	})

	t.Run("no active price values gold at zero", func(t *testing.T) {
		mockRepo := new(MockWalletRepository)
		mockUsers := new(MockUserRepository)
		mockPrices := new(MockGoldPriceService)
		mockRepo.On("FindByID", mock.Anything, walletID).Return(wallet, nil)
		mockPrices.On("Active", mock.Anything).Return(nil, nil)

		service := NewWalletService(mockRepo, mockUsers, mockPrices)
		got, err := service.Get(context.Background(), caller, authz.ScopeSelf, walletID)

		assert.NoError(t, err)
		assert.True(t, got.TotalValue.Equal(decimal.RequireFromString("1000")))
		assert.Nil(t, got.LatestGoldPrice)
	})

	t.Run("foreign wallet on self scope fails with 403 not 404", func(t *testing.T) {
		mockRepo := new(MockWalletRepository)
		mockUsers := new(MockUserRepository)
		mockPrices := new(MockGoldPriceService)
		mockRepo.On("FindByID", mock.Anything, walletID).Return(wallet, nil)

		stranger := authz.Caller{ID: uuid.New(), Username: "bob", Role: model.RoleCustomer}
		service := NewWalletService(mockRepo, mockUsers, mockPrices)
		_, err := service.Get(context.Background(), stranger, authz.ScopeSelf, walletID)

		assert.Equal(t, errors.ErrNotOwner, err)
	})

	t.Run("customer on the admin surface gets 403 before any lookup", func(t *testing.T) {
		mockRepo := new(MockWalletRepository)
		mockUsers := new(MockUserRepository)
		mockPrices := new(MockGoldPriceService)

		// Even an id that does not exist must not leak a 404 here.
		service := NewWalletService(mockRepo, mockUsers, mockPrices)
		_, err := service.Get(context.Background(), caller, authz.ScopeAdmin, uuid.New())

		assert.Equal(t, errors.ErrForbidden, err)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("absent wallet fails with 404", func(t *testing.T) {
		mockRepo := new(MockWalletRepository)
		mockUsers := new(MockUserRepository)
		mockPrices := new(MockGoldPriceService)
		missing := uuid.New()
		mockRepo.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)

		service := NewWalletService(mockRepo, mockUsers, mockPrices)
		_, err := service.Get(context.Background(), caller, authz.ScopeSelf, missing)

		assert.Equal(t, errors.ErrWalletNotFound, err)
	})
}

func TestValidateWalletFields(t *testing.T) {
	tests := []struct {
		name          string
		fields        WalletFields
		expectedField string
	}{
		{
			name:   "zero balances ok",
			fields: WalletFields{},
		},
		{
			name: "balances at the ceilings ok",
			fields: WalletFields{
				MoneyStock: model.MaxMoneyAmount,
				GoldStock:  model.MaxGoldAmount,
			},
		},
		{
			name:          "negative money rejected",
			fields:        WalletFields{MoneyStock: decimal.RequireFromString("-1")},
			expectedField: "money_stock",
		},
		{
			name:          "negative gold rejected",
			fields:        WalletFields{GoldStock: decimal.RequireFromString("-0.0001")},
			expectedField: "gold_stock",
		},
		{
			name:          "money above ceiling rejected",
			fields:        WalletFields{MoneyStock: model.MaxMoneyAmount.Add(decimal.New(1, 0))},
			expectedField: "money_stock",
		},
		{
			name:          "gold above ceiling rejected",
			fields:        WalletFields{GoldStock: model.MaxGoldAmount.Add(decimal.New(1, 0))},
			expectedField: "gold_stock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWalletFields(tt.fields)
			if tt.expectedField == "" {
				assert.NoError(t, err)
			} else {
				var verr *errors.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.expectedField, verr.Field)
			}
		})
	}
}

func TestWalletService_Create(t *testing.T) {
	ownerID := uuid.New()

	t.Run("second wallet for the same user is rejected", func(t *testing.T) {
		mockRepo := new(MockWalletRepository)
		mockUsers := new(MockUserRepository)
		mockPrices := new(MockGoldPriceService)
		mockUsers.On("FindByID", mock.Anything, ownerID).Return(&model.User{ID: ownerID}, nil)
		mockRepo.On("FindByUserID", mock.Anything, ownerID).Return(&model.Wallet{ID: uuid.New(), UserID: ownerID}, nil)

		service := NewWalletService(mockRepo, mockUsers, mockPrices)
		_, err := service.Create(context.Background(), adminCaller(), ownerID, WalletFields{})

		assert.Equal(t, errors.ErrWalletAlreadyExists, err)
	})

	t.Run("customer may not create wallets", func(t *testing.T) {
		mockRepo := new(MockWalletRepository)
		mockUsers := new(MockUserRepository)
		mockPrices := new(MockGoldPriceService)

		service := NewWalletService(mockRepo, mockUsers, mockPrices)
		_, err := service.Create(context.Background(), customerCaller(), ownerID, WalletFields{})

		assert.Equal(t, errors.ErrForbidden, err)
	})
}

func TestWalletService_List_SelfScope(t *testing.T) {
	caller := customerCaller()
	mockRepo := new(MockWalletRepository)
	mockUsers := new(MockUserRepository)
	mockPrices := new(MockGoldPriceService)

	mockRepo.On("ListByOwner", mock.Anything, caller.ID).Return([]model.Wallet{
		{ID: uuid.New(), UserID: caller.ID, MoneyStock: decimal.RequireFromString("500")},
	}, nil)
	mockPrices.On("Active", mock.Anything).Return(nil, nil)

	service := NewWalletService(mockRepo, mockUsers, mockPrices)
	wallets, err := service.List(context.Background(), caller, authz.ScopeSelf, "")

	assert.NoError(t, err)
	assert.Len(t, wallets, 1)
	assert.True(t, wallets[0].TotalValue.Equal(decimal.RequireFromString("500")))
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
