package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/rezabhm/Gold-Online-Store/internal/auth"
	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/config"
	"github.com/rezabhm/Gold-Online-Store/internal/handler"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

// Handlers bundles everything Register mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Wallet    *handler.WalletHandler
	GoldPrice *handler.GoldPriceHandler

	PaymentTransactions      *handler.ResourceHandler[model.PaymentTransaction, handler.PaymentTransactionRequest, *handler.PaymentTransactionRequest]
	GoldSaleTransactions     *handler.ResourceHandler[model.GoldSaleTransaction, handler.GoldSaleTransactionRequest, *handler.GoldSaleTransactionRequest]
	GoldPurchaseTransactions *handler.ResourceHandler[model.GoldPurchaseTransaction, handler.GoldPurchaseTransactionRequest, *handler.GoldPurchaseTransactionRequest]
	MoneyWithdrawals         *handler.ResourceHandler[model.MoneyWithdrawalRequest, handler.MoneyWithdrawalRequest, *handler.MoneyWithdrawalRequest]
	GoldWithdrawals          *handler.ResourceHandler[model.GoldWithdrawalRequest, handler.GoldWithdrawalRequest, *handler.GoldWithdrawalRequest]
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, jwtService *auth.JWTService, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/core/register", h.User.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)

	// Secured routes (require JWT authentication). Token validation goes
	// through the same service that issues tokens.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}), handler.ResolveCaller)

	// Admin surface: full CRUD over every record in the system.
	admin := secured.Group("/admin")

	admin.GET("/users", h.User.AdminList)
	admin.POST("/users", h.User.AdminCreate)
	admin.GET("/users/:id", h.User.Retrieve(authz.ScopeAdmin))
	admin.PUT("/users/:id", h.User.Update(authz.ScopeAdmin, false))
	admin.PATCH("/users/:id", h.User.Update(authz.ScopeAdmin, true))
	admin.DELETE("/users/:id", h.User.AdminDelete)

	admin.GET("/wallets", h.Wallet.List(authz.ScopeAdmin))
	admin.POST("/wallets", h.Wallet.AdminCreate)
	admin.GET("/wallets/:id", h.Wallet.Retrieve(authz.ScopeAdmin))
	admin.PUT("/wallets/:id", h.Wallet.Update(authz.ScopeAdmin, false))
	admin.PATCH("/wallets/:id", h.Wallet.Update(authz.ScopeAdmin, true))
	admin.DELETE("/wallets/:id", h.Wallet.AdminDelete)

	admin.GET("/gold-prices", h.GoldPrice.List)
	admin.POST("/gold-prices", h.GoldPrice.Create)
	admin.GET("/gold-prices/:id", h.GoldPrice.Retrieve)
	admin.PUT("/gold-prices/:id", h.GoldPrice.Update(false))
	admin.PATCH("/gold-prices/:id", h.GoldPrice.Update(true))
	admin.DELETE("/gold-prices/:id", h.GoldPrice.Delete)

	h.PaymentTransactions.Register(admin, "/payment-transactions", authz.ScopeAdmin)
	h.GoldSaleTransactions.Register(admin, "/gold-sale-transactions", authz.ScopeAdmin)
	h.GoldPurchaseTransactions.Register(admin, "/gold-purchase-transactions", authz.ScopeAdmin)
	h.MoneyWithdrawals.Register(admin, "/money-withdrawal-requests", authz.ScopeAdmin)
	h.GoldWithdrawals.Register(admin, "/gold-withdrawal-requests", authz.ScopeAdmin)

	// Self surface: customers work on their own records only. There is
	// no self route for gold prices.
	secured.GET("/users/:id", h.User.Retrieve(authz.ScopeSelf))
	secured.PUT("/users/:id", h.User.Update(authz.ScopeSelf, false))
	secured.PATCH("/users/:id", h.User.Update(authz.ScopeSelf, true))

	secured.GET("/wallets", h.Wallet.List(authz.ScopeSelf))
	secured.GET("/wallets/:id", h.Wallet.Retrieve(authz.ScopeSelf))
	secured.PUT("/wallets/:id", h.Wallet.Update(authz.ScopeSelf, false))
	secured.PATCH("/wallets/:id", h.Wallet.Update(authz.ScopeSelf, true))

	h.PaymentTransactions.Register(secured, "/payment-transactions", authz.ScopeSelf)
	h.GoldSaleTransactions.Register(secured, "/gold-sale-transactions", authz.ScopeSelf)
	h.GoldPurchaseTransactions.Register(secured, "/gold-purchase-transactions", authz.ScopeSelf)
	h.MoneyWithdrawals.Register(secured, "/money-withdrawal-requests", authz.ScopeSelf)
	h.GoldWithdrawals.Register(secured, "/gold-withdrawal-requests", authz.ScopeSelf)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
