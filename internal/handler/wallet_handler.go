package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/service"
)

// WalletHandler handles wallet endpoints. Wallet reads carry the derived
// total_value and the nested latest active gold price.
type WalletHandler struct {
	walletService service.WalletService
}

// NewWalletHandler creates a new wallet handler.
func NewWalletHandler(walletService service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// WalletRequest represents a wallet create or update request.
type WalletRequest struct {
	User       *string          `json:"user"`
	MoneyStock *decimal.Decimal `json:"money_stock"`
	GoldStock  *decimal.Decimal `json:"gold_stock"`
}

// AdminCreate godoc
// @Summary Create a wallet for a user
// @Tags wallets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WalletRequest true "Wallet data"
// @Success 201 {object} model.Wallet
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/wallets [post]
func (h *WalletHandler) AdminCreate(c echo.Context) error {
	caller, err := CallerFromContext(c)
	if err != nil {
		return err
	}
	var req WalletRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if req.User == nil {
		return mapError(errors.NewValidationError("user", "user is required"))
	}
	ownerID, err := uuid.Parse(*req.User)
	if err != nil {
		return mapError(errors.NewValidationError("user", "invalid user id"))
	}

	wallet, err := h.walletService.Create(c.Request().Context(), caller, ownerID, walletFields(&req))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, wallet)
}

func walletFields(req *WalletRequest) service.WalletFields {
	fields := service.WalletFields{}
	if req.MoneyStock != nil {
		fields.MoneyStock = *req.MoneyStock
	}
	if req.GoldStock != nil {
		fields.GoldStock = *req.GoldStock
	}
	return fields
}

// Retrieve returns GET by id for the given scope.
func (h *WalletHandler) Retrieve(scope authz.Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}

		wallet, err := h.walletService.Get(c.Request().Context(), caller, scope, id)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, wallet)
	}
}

// Update returns PUT/PATCH for the given scope. Balances are
// bounds-checked; a partial update keeps absent balances untouched.
func (h *WalletHandler) Update(scope authz.Scope, partial bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}

		var req WalletRequest
		if err := c.Bind(&req); err != nil {
			return bindError()
		}
		if scope == authz.ScopeSelf && req.User != nil {
			return mapError(errors.NewValidationError("user", "user field cannot be modified"))
		}
		if !partial && (req.MoneyStock == nil || req.GoldStock == nil) {
			return mapError(errors.NewValidationError("money_stock", "money stock and gold stock are required"))
		}

		// Partial updates start from the stored balances.
		current, err := h.walletService.Get(c.Request().Context(), caller, scope, id)
		if err != nil {
			return mapError(err)
		}
		fields := service.WalletFields{MoneyStock: current.MoneyStock, GoldStock: current.GoldStock}
		if req.MoneyStock != nil {
			fields.MoneyStock = *req.MoneyStock
		}
		if req.GoldStock != nil {
			fields.GoldStock = *req.GoldStock
		}

		wallet, err := h.walletService.Update(c.Request().Context(), caller, scope, id, fields)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, wallet)
	}
}

// List returns the collection handler for the given scope.
func (h *WalletHandler) List(scope authz.Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}
		wallets, err := h.walletService.List(c.Request().Context(), caller, scope, c.QueryParam("search"))
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, wallets)
	}
}

// AdminDelete godoc
// @Summary Delete a wallet
// @Tags wallets
// @Security BearerAuth
// @Param id path string true "Wallet ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/wallets/{id} [delete]
func (h *WalletHandler) AdminDelete(c echo.Context) error {
	caller, err := CallerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.walletService.Delete(c.Request().Context(), caller, id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
