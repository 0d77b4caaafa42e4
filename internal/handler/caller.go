package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rezabhm/Gold-Online-Store/internal/auth"
	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

const callerContextKey = "caller"

// ResolveCaller converts the validated JWT claims into an authz.Caller
// and stores it on the request context. Mounted after the echo-jwt
// middleware, whose ParseTokenFunc leaves *auth.Claims under "user".
func ResolveCaller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
		}

		role := claims.Role
		if !role.Valid() {
			role = model.RoleCustomer
		}
		c.Set(callerContextKey, authz.Caller{
			ID:       userID,
			Username: claims.Username,
			Role:     role,
		})
		return next(c)
	}
}

// CallerFromContext returns the caller resolved by ResolveCaller.
func CallerFromContext(c echo.Context) (authz.Caller, error) {
	caller, ok := c.Get(callerContextKey).(authz.Caller)
	if !ok {
		return authz.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing caller identity")
	}
	return caller, nil
}
