package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/service"
)

// GoldPriceHandler handles the admin-only gold price ledger. Customers
// have no access to price records, not even reads.
type GoldPriceHandler struct {
	priceService service.GoldPriceService
}

// NewGoldPriceHandler creates a new gold price handler.
func NewGoldPriceHandler(priceService service.GoldPriceService) *GoldPriceHandler {
	return &GoldPriceHandler{priceService: priceService}
}

// GoldPriceRequest represents a gold price create or update request.
type GoldPriceRequest struct {
	Date            *time.Time       `json:"date"`
	SalePrice       *decimal.Decimal `json:"sale_price"`
	PriceDifference *decimal.Decimal `json:"price_difference"`
	TotalGoldStock  *decimal.Decimal `json:"total_gold_stock"`
	StockStatus     *bool            `json:"stock_status"`
	Active          *bool            `json:"active"`
}

func (r *GoldPriceRequest) fields(base service.GoldPriceFields) service.GoldPriceFields {
	if r.Date != nil {
		base.Date = r.Date
	}
	if r.SalePrice != nil {
		base.SalePrice = *r.SalePrice
	}
	if r.PriceDifference != nil {
		base.PriceDifference = *r.PriceDifference
	}
	if r.TotalGoldStock != nil {
		base.TotalGoldStock = *r.TotalGoldStock
	}
	if r.StockStatus != nil {
		base.StockStatus = *r.StockStatus
	}
	if r.Active != nil {
		base.Active = *r.Active
	}
	return base
}

// Create godoc
// @Summary Publish a gold price
// @Tags gold-prices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GoldPriceRequest true "Price data"
// @Success 201 {object} model.GoldPrice
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/gold-prices [post]
func (h *GoldPriceHandler) Create(c echo.Context) error {
	caller, err := CallerFromContext(c)
	if err != nil {
		return err
	}
	var req GoldPriceRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if req.SalePrice == nil {
		return mapError(errors.NewValidationError("sale_price", "sale price is required"))
	}

	// New prices default to active and in stock, matching the ledger's
	// publish-and-switch usage.
	fields := req.fields(service.GoldPriceFields{StockStatus: true, Active: true})
	price, err := h.priceService.Create(c.Request().Context(), caller, fields)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, price)
}

// Retrieve godoc
// @Summary Get a gold price
// @Tags gold-prices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Price ID"
// @Success 200 {object} model.GoldPrice
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/gold-prices/{id} [get]
func (h *GoldPriceHandler) Retrieve(c echo.Context) error {
	caller, err := CallerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	price, err := h.priceService.Get(c.Request().Context(), caller, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, price)
}

// Update handles PUT (partial=false) and PATCH (partial=true).
func (h *GoldPriceHandler) Update(partial bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}

		var req GoldPriceRequest
		if err := c.Bind(&req); err != nil {
			return bindError()
		}
		if !partial && req.SalePrice == nil {
			return mapError(errors.NewValidationError("sale_price", "sale price is required"))
		}

		// Partial updates start from the stored record.
		current, err := h.priceService.Get(c.Request().Context(), caller, id)
		if err != nil {
			return mapError(err)
		}
		fields := req.fields(service.GoldPriceFields{
			SalePrice:       current.SalePrice,
			PriceDifference: current.PriceDifference,
			TotalGoldStock:  current.TotalGoldStock,
			StockStatus:     current.StockStatus,
			Active:          current.Active,
		})

		price, err := h.priceService.Update(c.Request().Context(), caller, id, fields)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, price)
	}
}

// Delete godoc
// @Summary Delete a gold price
// @Tags gold-prices
// @Security BearerAuth
// @Param id path string true "Price ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/gold-prices/{id} [delete]
func (h *GoldPriceHandler) Delete(c echo.Context) error {
	caller, err := CallerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.priceService.Delete(c.Request().Context(), caller, id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// List godoc
// @Summary List gold prices
// @Tags gold-prices
// @Produce json
// @Security BearerAuth
// @Param search query string false "Free-text filter on the price date"
// @Success 200 {array} model.GoldPrice
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/gold-prices [get]
func (h *GoldPriceHandler) List(c echo.Context) error {
	caller, err := CallerFromContext(c)
	if err != nil {
		return err
	}
	prices, err := h.priceService.List(c.Request().Context(), caller, c.QueryParam("search"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, prices)
}
