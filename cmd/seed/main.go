package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rezabhm/Gold-Online-Store/internal/config"
	"github.com/rezabhm/Gold-Online-Store/internal/db"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
	"github.com/rezabhm/Gold-Online-Store/internal/repository"
)

// seedUser describes one user to create along with wallet balances.
type seedUser struct {
	Username   string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       model.Role
	MoneyStock string
	GoldStock  string
}

var seedUsers = []seedUser{
	{
		Username: "admin", Email: "admin@goldstore.local", Password: "admin1234",
		FirstName: "Site", LastName: "Admin", Role: model.RoleAdmin,
		MoneyStock: "0", GoldStock: "0",
	},
	{
		Username: "alice", Email: "alice@example.com", Password: "alice1234",
		FirstName: "Alice", LastName: "Norouzi", Role: model.RoleCustomer,
		MoneyStock: "5000000", GoldStock: "2.5000",
	},
	{
		Username: "bob", Email: "bob@example.com", Password: "bob12345",
		FirstName: "Bob", LastName: "Karimi", Role: model.RoleCustomer,
		MoneyStock: "1000000", GoldStock: "0.7500",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Wallet{},
		&model.GoldPrice{},
		&model.PaymentTransaction{},
		&model.GoldSaleTransaction{},
		&model.GoldPurchaseTransaction{},
		&model.MoneyWithdrawalRequest{},
		&model.GoldWithdrawalRequest{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	walletRepo := repository.NewWalletRepository(gormDB)
	priceRepo := repository.NewGoldPriceRepository(gormDB)
	ctx := context.Background()

	created, skipped, err := seedAccounts(ctx, userRepo, walletRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	if err := seedActivePrice(ctx, priceRepo); err != nil {
		log.Fatalf("Failed to seed gold price: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}

// seedAccounts creates the seed users and their wallets, skipping
// usernames that already exist.
func seedAccounts(ctx context.Context, users repository.UserRepository, wallets repository.WalletRepository) (created int, skipped int, err error) {
	for _, item := range seedUsers {
		existing, err := users.FindByUsername(ctx, item.Username)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, skipped, fmt.Errorf("error checking user %s: %w", item.Username, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(item.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, skipped, fmt.Errorf("error hashing password for %s: %w", item.Username, err)
		}

		user := &model.User{
			Username:     item.Username,
			Email:        item.Email,
			PasswordHash: string(hash),
			FirstName:    item.FirstName,
			LastName:     item.LastName,
			Role:         item.Role,
			Active:       true,
		}
		if err := users.Create(ctx, user); err != nil {
			return created, skipped, fmt.Errorf("error creating user %s: %w", item.Username, err)
		}

		wallet := &model.Wallet{
			UserID:     user.ID,
			MoneyStock: decimal.RequireFromString(item.MoneyStock),
			GoldStock:  decimal.RequireFromString(item.GoldStock),
		}
		if err := wallets.Create(ctx, wallet); err != nil {
			return created, skipped, fmt.Errorf("error creating wallet for %s: %w", item.Username, err)
		}
		created++
	}
	return created, skipped, nil
}

// seedActivePrice publishes one active price so wallet valuations work
// out of the box. Skipped when an active price already exists.
func seedActivePrice(ctx context.Context, prices repository.GoldPriceRepository) error {
	if _, err := prices.FindActive(ctx); err == nil {
		log.Println("Active gold price already present, skipping price seed")
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	price := &model.GoldPrice{
		SalePrice:       decimal.RequireFromString("2500000"),
		PriceDifference: decimal.RequireFromString("15000"),
		TotalGoldStock:  decimal.RequireFromString("100.0000"),
		StockStatus:     true,
		Active:          true,
	}
	if err := prices.Create(ctx, price); err != nil {
		return err
	}
	log.Printf("Seeded active gold price: %s", price.SalePrice.String())
	return nil
}
