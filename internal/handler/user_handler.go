package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
	"github.com/rezabhm/Gold-Online-Store/internal/service"
)

// UserHandler handles user endpoints: public registration, the admin
// user resource, and the self-scoped view of the caller's own record.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents a public self-registration request.
type RegisterRequest struct {
	Username  string  `json:"username" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      *string `json:"user_role"`
}

// UserRequest represents an admin create or any user update request.
// Nil fields are absent from the payload.
type UserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"user_role"`
	Active    *bool   `json:"active"`
}

func (r *UserRequest) fields() (service.UserFields, error) {
	f := service.UserFields{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Active:    r.Active,
	}
	if r.Role != nil {
		role := model.Role(*r.Role)
		if !role.Valid() {
			return f, errors.NewValidationError("user_role", "unknown role")
		}
		f.Role = &role
	}
	return f, nil
}

// Register godoc
// @Summary Register a new customer account
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /core/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// The stored role is always customer; any other submitted value is an error.
	if req.Role != nil && model.Role(*req.Role) != model.RoleCustomer {
		return mapError(errors.NewValidationError("user_role", `user role must be "customer" for registration`))
	}

	user, err := h.userService.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// AdminCreate godoc
// @Summary Create a user with an explicit role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UserRequest true "User data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) AdminCreate(c echo.Context) error {
	caller, err := CallerFromContext(c)
	if err != nil {
		return err
	}
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields, err := req.fields()
	if err != nil {
		return mapError(err)
	}

	user, err := h.userService.Create(c.Request().Context(), caller, fields)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// AdminList godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Filter on username or email"
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) AdminList(c echo.Context) error {
	caller, err := CallerFromContext(c)
	if err != nil {
		return err
	}
	users, err := h.userService.List(c.Request().Context(), caller, c.QueryParam("search"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Retrieve returns GET by id for the given scope.
func (h *UserHandler) Retrieve(scope authz.Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}

		user, err := h.userService.Get(c.Request().Context(), caller, scope, id)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, user)
	}
}

// Update returns PUT/PATCH for the given scope.
func (h *UserHandler) Update(scope authz.Scope, partial bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}

		var req UserRequest
		if err := c.Bind(&req); err != nil {
			return bindError()
		}
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if !partial && (req.Username == nil || req.Email == nil) {
			return mapError(errors.NewValidationError("username", "username and email are required"))
		}
		fields, err := req.fields()
		if err != nil {
			return mapError(err)
		}

		user, err := h.userService.Update(c.Request().Context(), caller, scope, id, fields)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, user)
	}
}

// AdminDelete godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) AdminDelete(c echo.Context) error {
	caller, err := CallerFromContext(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), caller, id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
