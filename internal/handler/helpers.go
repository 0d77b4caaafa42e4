package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

// mapError converts a domain error into the standardized echo error response.
func mapError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindError is the uniform 400 for malformed request bodies.
func bindError() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

func validateMoney(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.NewValidationError(field, "amount cannot be negative")
	}
	if amount.GreaterThan(model.MaxMoneyAmount) {
		return errors.NewValidationError(field, "amount exceeds maximum allowed value")
	}
	return nil
}

func validateGold(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.NewValidationError(field, "amount cannot be negative")
	}
	if amount.GreaterThan(model.MaxGoldAmount) {
		return errors.NewValidationError(field, "amount exceeds maximum allowed value")
	}
	return nil
}
