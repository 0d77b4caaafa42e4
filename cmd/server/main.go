package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/rezabhm/Gold-Online-Store/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"github.com/rezabhm/Gold-Online-Store/internal/auth"
	"github.com/rezabhm/Gold-Online-Store/internal/cache"
	"github.com/rezabhm/Gold-Online-Store/internal/config"
	"github.com/rezabhm/Gold-Online-Store/internal/db"
	"github.com/rezabhm/Gold-Online-Store/internal/handler"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
	"github.com/rezabhm/Gold-Online-Store/internal/repository"
	"github.com/rezabhm/Gold-Online-Store/internal/router"
	"github.com/rezabhm/Gold-Online-Store/internal/service"
)

// @title Gold Online Store API
// @version 1.0
// @description Gold trading platform with user wallets, a gold price ledger, payment and gold transactions, and JWT authentication.
// @host localhost:5000
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.GoldWithdrawalRequest{},
			&model.MoneyWithdrawalRequest{},
			&model.GoldPurchaseTransaction{},
			&model.GoldSaleTransaction{},
			&model.PaymentTransaction{},
			&model.GoldPrice{},
			&model.Wallet{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
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
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	walletRepo := repository.NewWalletRepository(gormDB)
	priceRepo := repository.NewGoldPriceRepository(gormDB)
	paymentTxRepo := repository.NewResourceRepository[model.PaymentTransaction](gormDB, "User")
	goldSaleRepo := repository.NewResourceRepository[model.GoldSaleTransaction](gormDB, "User", "GoldPrice")
	goldPurchaseRepo := repository.NewResourceRepository[model.GoldPurchaseTransaction](gormDB, "User", "GoldPrice")
	moneyWithdrawalRepo := repository.NewResourceRepository[model.MoneyWithdrawalRequest](gormDB, "User")
	goldWithdrawalRepo := repository.NewResourceRepository[model.GoldWithdrawalRequest](gormDB, "User")

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, walletRepo)
	priceService := service.NewGoldPriceService(priceRepo, cacheClient)
	walletService := service.NewWalletService(walletRepo, userRepo, priceService)

	paymentTxService := service.NewResourceService[model.PaymentTransaction, *model.PaymentTransaction](
		paymentTxRepo, userRepo, nil)
	goldSaleService := service.NewResourceService[model.GoldSaleTransaction, *model.GoldSaleTransaction](
		goldSaleRepo, userRepo,
		service.RequireActivePrice[model.GoldSaleTransaction, *model.GoldSaleTransaction](priceRepo))
	goldPurchaseService := service.NewResourceService[model.GoldPurchaseTransaction, *model.GoldPurchaseTransaction](
		goldPurchaseRepo, userRepo,
		service.RequireActivePrice[model.GoldPurchaseTransaction, *model.GoldPurchaseTransaction](priceRepo))
	moneyWithdrawalService := service.NewResourceService[model.MoneyWithdrawalRequest, *model.MoneyWithdrawalRequest](
		moneyWithdrawalRepo, userRepo, nil)
	goldWithdrawalService := service.NewResourceService[model.GoldWithdrawalRequest, *model.GoldWithdrawalRequest](
		goldWithdrawalRepo, userRepo, nil)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Wallet:    handler.NewWalletHandler(walletService),
		GoldPrice: handler.NewGoldPriceHandler(priceService),

		PaymentTransactions:      handler.NewResourceHandler[model.PaymentTransaction, handler.PaymentTransactionRequest, *handler.PaymentTransactionRequest](paymentTxService),
		GoldSaleTransactions:     handler.NewResourceHandler[model.GoldSaleTransaction, handler.GoldSaleTransactionRequest, *handler.GoldSaleTransactionRequest](goldSaleService),
		GoldPurchaseTransactions: handler.NewResourceHandler[model.GoldPurchaseTransaction, handler.GoldPurchaseTransactionRequest, *handler.GoldPurchaseTransactionRequest](goldPurchaseService),
		MoneyWithdrawals:         handler.NewResourceHandler[model.MoneyWithdrawalRequest, handler.MoneyWithdrawalRequest, *handler.MoneyWithdrawalRequest](moneyWithdrawalService),
		GoldWithdrawals:          handler.NewResourceHandler[model.GoldWithdrawalRequest, handler.GoldWithdrawalRequest, *handler.GoldWithdrawalRequest](goldWithdrawalService),
	}

	// Register routes
	router.Register(e, cfg, jwtService, handlers)

	// Log swagger full path
	var swaggerURL string
	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		if len(cfg.SwaggerHost) >= 7 && cfg.SwaggerHost[:7] == "http://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else if len(cfg.SwaggerHost) >= 8 && cfg.SwaggerHost[:8] == "https://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	} else {
		swaggerURL = "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
