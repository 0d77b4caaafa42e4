package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

func adminCaller() authz.Caller {
	return authz.Caller{ID: uuid.New(), Username: "admin", Role: model.RoleAdmin}
}

func customerCaller() authz.Caller {
	return authz.Caller{ID: uuid.New(), Username: "alice", Role: model.RoleCustomer}
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		setupMock     func(*MockUserRepository, *MockWalletRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			setupMock: func(mUsers *MockUserRepository, mWallets *MockWalletRepository) {
				mUsers.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				mUsers.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				// User and wallet go through the one transactional insert.
				mUsers.On("CreateWithWallet", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Wallet")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "alice",
			email:    "new@example.com",
			setupMock: func(mUsers *MockUserRepository, mWallets *MockWalletRepository) {
				mUsers.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: uuid.New(), Username: "alice"}, nil)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
		{
			name:     "email already taken",
			username: "newuser",
			email:    "alice@example.com",
			setupMock: func(mUsers *MockUserRepository, mWallets *MockWalletRepository) {
				mUsers.On("FindByUsername", mock.Anything, "newuser").Return(nil, gorm.ErrRecordNotFound)
				mUsers.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{ID: uuid.New(), Email: "alice@example.com"}, nil)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockWallets := new(MockWalletRepository)
			tt.setupMock(mockUsers, mockWallets)

			service := NewUserService(mockUsers, mockWallets)
			user, err := service.Register(context.Background(), tt.username, tt.email, "password123", "First", "Last")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				// Registration always stores the customer role, whatever
				// the caller submitted.
				assert.Equal(t, model.RoleCustomer, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}

			mockUsers.AssertExpectations(t)
			mockWallets.AssertExpectations(t)
		})
	}
}

func TestUserService_Update_RoleEscalation(t *testing.T) {
	caller := customerCaller()
	adminRole := model.RoleAdmin

	mockUsers := new(MockUserRepository)
	mockWallets := new(MockWalletRepository)
	stored := &model.User{ID: caller.ID, Username: "alice", Email: "alice@example.com", Role: model.RoleCustomer}
	mockUsers.On("FindByID", mock.Anything, caller.ID).Return(stored, nil)

	service := NewUserService(mockUsers, mockWallets)
	user, err := service.Update(context.Background(), caller, authz.ScopeSelf, caller.ID, UserFields{Role: &adminRole})

	assert.Equal(t, errors.ErrRoleEscalation, err)
	assert.Nil(t, user)
	// The stored role must be untouched; no save may have happened.
	assert.Equal(t, model.RoleCustomer, stored.Role)
	mockUsers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Update_ForeignRecord(t *testing.T) {
	caller := customerCaller()
	otherID := uuid.New()

	mockUsers := new(MockUserRepository)
	mockWallets := new(MockWalletRepository)
	mockUsers.On("FindByID", mock.Anything, otherID).Return(&model.User{ID: otherID, Username: "bob"}, nil)

	service := NewUserService(mockUsers, mockWallets)
	_, err := service.Update(context.Background(), caller, authz.ScopeSelf, otherID, UserFields{})

	assert.Equal(t, errors.ErrNotOwner, err)
}

func TestUserService_Delete(t *testing.T) {
	userID := uuid.New()
	walletID := uuid.New()

	tests := []struct {
		name          string
		caller        authz.Caller
		setupMock     func(*MockUserRepository, *MockWalletRepository)
		expectedError error
	}{
		{
			name:   "successful delete removes wallet too",
			caller: adminCaller(),
			setupMock: func(mUsers *MockUserRepository, mWallets *MockWalletRepository) {
				mUsers.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mUsers.On("ReferenceCount", mock.Anything, userID).Return(int64(0), nil)
				mWallets.On("FindByUserID", mock.Anything, userID).Return(&model.Wallet{ID: walletID, UserID: userID}, nil)
				mWallets.On("Delete", mock.Anything, walletID).Return(nil)
				mUsers.On("Delete", mock.Anything, userID).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "referenced user is delete-protected",
			caller: adminCaller(),
			setupMock: func(mUsers *MockUserRepository, mWallets *MockWalletRepository) {
				mUsers.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
				mUsers.On("ReferenceCount", mock.Anything, userID).Return(int64(3), nil)
			},
			expectedError: errors.ErrUserProtected,
		},
		{
			name:          "customer may not delete",
			caller:        customerCaller(),
			setupMock:     func(mUsers *MockUserRepository, mWallets *MockWalletRepository) {},
			expectedError: errors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockWallets := new(MockWalletRepository)
			tt.setupMock(mockUsers, mockWallets)

			service := NewUserService(mockUsers, mockWallets)
			err := service.Delete(context.Background(), tt.caller, userID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			mockUsers.AssertExpectations(t)
			mockWallets.AssertExpectations(t)
		})
	}
}

func TestUserService_Get_AdminScopeRequiresAdmin(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWallets := new(MockWalletRepository)

	// A customer on the admin surface gets 403 before any lookup, so an
	// absent id never leaks a 404.
	service := NewUserService(mockUsers, mockWallets)
	_, err := service.Get(context.Background(), customerCaller(), authz.ScopeAdmin, uuid.New())

	assert.Equal(t, errors.ErrForbidden, err)
	mockUsers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUserService_Create_RequiresAdmin(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockWallets := new(MockWalletRepository)

	service := NewUserService(mockUsers, mockWallets)
	username, email, password := "bob", "bob@example.com", "password123"
	_, err := service.Create(context.Background(), customerCaller(), UserFields{
		Username: &username,
		Email:    &email,
		Password: &password,
	})

	assert.Equal(t, errors.ErrForbidden, err)
}
