package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
	"github.com/rezabhm/Gold-Online-Store/internal/repository"
)

const bcryptCost = 10

// UserFields are the writable fields of a user record. Nil pointers mean
// "not submitted", which a partial update leaves untouched.
type UserFields struct {
	Username  *string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Role      *model.Role
	Active    *bool
}

// UserService manages user accounts.
type UserService interface {
	// Register is the public self-registration path. The stored role is
	// always customer and an empty wallet is created alongside the user.
	Register(ctx context.Context, username, email, password, firstName, lastName string) (*model.User, error)
	// Create is the admin path and accepts either role.
	Create(ctx context.Context, caller authz.Caller, fields UserFields) (*model.User, error)
	Get(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID, fields UserFields) (*model.User, error)
	Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error
	List(ctx context.Context, caller authz.Caller, search string) ([]model.User, error)
}

type userService struct {
	repo    repository.UserRepository
	wallets repository.WalletRepository
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, wallets repository.WalletRepository) UserService {
	return &userService{repo: repo, wallets: wallets}
}

func (s *userService) checkUnique(ctx context.Context, username, email string, exclude uuid.UUID) error {
	if existing, err := s.repo.FindByUsername(ctx, username); err == nil && existing.ID != exclude {
		return errors.ErrUserAlreadyExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing.ID != exclude {
		return errors.ErrUserAlreadyExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	return nil
}

// Register creates a customer account with hashed password and its wallet.
func (s *userService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*model.User, error) {
	if err := s.checkUnique(ctx, username, email, uuid.Nil); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         model.RoleCustomer,
		Active:       true,
	}
	if err := s.repo.CreateWithWallet(ctx, user, &model.Wallet{}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Create creates a user with an explicit role. Admin-only.
func (s *userService) Create(ctx context.Context, caller authz.Caller, fields UserFields) (*model.User, error) {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return nil, err
	}
	if fields.Username == nil || fields.Email == nil || fields.Password == nil {
		return nil, errors.NewValidationError("username", "username, email and password are required")
	}
	role := model.RoleCustomer
	if fields.Role != nil {
		if !fields.Role.Valid() {
			return nil, errors.NewValidationError("user_role", "unknown role")
		}
		role = *fields.Role
	}
	if err := s.checkUnique(ctx, *fields.Username, *fields.Email, uuid.Nil); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*fields.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     *fields.Username,
		Email:        *fields.Email,
		PasswordHash: string(hashed),
		Role:         role,
		Active:       true,
	}
	if fields.FirstName != nil {
		user.FirstName = *fields.FirstName
	}
	if fields.LastName != nil {
		user.LastName = *fields.LastName
	}
	if fields.Active != nil {
		user.Active = *fields.Active
	}
	if err := s.repo.CreateWithWallet(ctx, user, &model.Wallet{}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Get retrieves a user record. On the self surface only the caller's own
// record is visible; other records fail with 403. The scope check runs
// before the lookup so a customer on the admin surface always gets 403.
func (s *userService) Get(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID) (*model.User, error) {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	if err := authz.AuthorizeRecord(caller, scope, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Update edits a user record. A non-admin may never set role=admin on
// themselves; that fails with 403 and leaves the stored role unchanged.
func (s *userService) Update(ctx context.Context, caller authz.Caller, scope authz.Scope, id uuid.UUID, fields UserFields) (*model.User, error) {
	if err := authz.AuthorizeScope(caller, scope); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	if err := authz.AuthorizeRecord(caller, scope, user.ID); err != nil {
		return nil, err
	}
	if fields.Role != nil {
		if !fields.Role.Valid() {
			return nil, errors.NewValidationError("user_role", "unknown role")
		}
		if err := authz.AuthorizeRoleChange(caller, *fields.Role); err != nil {
			return nil, err
		}
	}

	username, email := user.Username, user.Email
	if fields.Username != nil {
		username = *fields.Username
	}
	if fields.Email != nil {
		email = *fields.Email
	}
	if err := s.checkUnique(ctx, username, email, user.ID); err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	if fields.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*fields.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if fields.FirstName != nil {
		user.FirstName = *fields.FirstName
	}
	if fields.LastName != nil {
		user.LastName = *fields.LastName
	}
	if fields.Role != nil {
		user.Role = *fields.Role
	}
	if fields.Active != nil {
		user.Active = *fields.Active
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user and their wallet. Users referenced by any
// transaction or request are delete-protected.
func (s *userService) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}

	refs, err := s.repo.ReferenceCount(ctx, user.ID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return errors.ErrUserProtected
	}

	// Wallet lifecycle follows the user.
	if wallet, err := s.wallets.FindByUserID(ctx, user.ID); err == nil {
		if err := s.wallets.Delete(ctx, wallet.ID); err != nil {
			return err
		}
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	return s.repo.Delete(ctx, user.ID)
}

// List lists users. Admin-only, optionally filtered on username or email.
func (s *userService) List(ctx context.Context, caller authz.Caller, search string) ([]model.User, error) {
	if err := authz.AuthorizeScope(caller, authz.ScopeAdmin); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, search)
}
