package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rezabhm/Gold-Online-Store/internal/authz"
	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/service"
)

// ResourceRequest is the request shape shared by all transaction/request
// families. One generic handler drives all five of them.
type ResourceRequest[T any] interface {
	// OwnerRef returns the caller-supplied owner field, if any.
	OwnerRef() *string
	// Validate checks field constraints. With partial set, absent
	// fields are allowed (PATCH); otherwise they are required (PUT/POST).
	Validate(partial bool) error
	// Apply copies the submitted fields onto the record.
	Apply(rec *T, partial bool) error
}

// requestPtr constrains RP to a pointer to R implementing ResourceRequest.
type requestPtr[R, T any] interface {
	*R
	ResourceRequest[T]
}

// ResourceHandler exposes one resource family on the admin-scoped and
// self-scoped surfaces. The scope is fixed per route at registration
// time; the handler itself is scope-agnostic.
type ResourceHandler[T any, R any, RP requestPtr[R, T]] struct {
	svc service.ResourceService[T]
}

// NewResourceHandler creates a handler for one resource family.
func NewResourceHandler[T any, R any, RP requestPtr[R, T]](svc service.ResourceService[T]) *ResourceHandler[T, R, RP] {
	return &ResourceHandler[T, R, RP]{svc: svc}
}

// Register mounts list/create/retrieve/update/partial-update/destroy
// under the given path.
func (h *ResourceHandler[T, R, RP]) Register(g *echo.Group, path string, scope authz.Scope) {
	g.GET(path, h.List(scope))
	g.POST(path, h.Create(scope))
	g.GET(path+"/:id", h.Retrieve(scope))
	g.PUT(path+"/:id", h.Update(scope, false))
	g.PATCH(path+"/:id", h.Update(scope, true))
	g.DELETE(path+"/:id", h.Delete(scope))
}

// Create handles POST. Self scope rejects a caller-supplied owner field
// and forces the owner to the caller.
func (h *ResourceHandler[T, R, RP]) Create(scope authz.Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}

		var req R
		if err := c.Bind(&req); err != nil {
			return bindError()
		}
		rp := RP(&req)
		if scope == authz.ScopeSelf && rp.OwnerRef() != nil {
			return mapError(errors.NewValidationError("user", "user field cannot be set manually"))
		}
		if err := rp.Validate(false); err != nil {
			return mapError(err)
		}

		var rec T
		if err := rp.Apply(&rec, false); err != nil {
			return mapError(err)
		}

		created, err := h.svc.Create(c.Request().Context(), caller, scope, &rec)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusCreated, created)
	}
}

// Retrieve handles GET by id.
func (h *ResourceHandler[T, R, RP]) Retrieve(scope authz.Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}

		rec, err := h.svc.Get(c.Request().Context(), caller, scope, id)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, rec)
	}
}

// Update handles PUT (partial=false, all fields required) and PATCH
// (partial=true, any subset). Self scope rejects any owner field in the
// payload regardless of value.
func (h *ResourceHandler[T, R, RP]) Update(scope authz.Scope, partial bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}

		var req R
		if err := c.Bind(&req); err != nil {
			return bindError()
		}
		rp := RP(&req)
		if scope == authz.ScopeSelf && rp.OwnerRef() != nil {
			return mapError(errors.NewValidationError("user", "user field cannot be modified"))
		}
		if err := rp.Validate(partial); err != nil {
			return mapError(err)
		}

		updated, err := h.svc.Update(c.Request().Context(), caller, scope, id, func(rec *T) error {
			return rp.Apply(rec, partial)
		})
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// Delete handles DELETE.
func (h *ResourceHandler[T, R, RP]) Delete(scope authz.Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}
		id, err := pathID(c)
		if err != nil {
			return err
		}

		if err := h.svc.Delete(c.Request().Context(), caller, scope, id); err != nil {
			return mapError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// List handles GET on the collection with an optional search query param.
func (h *ResourceHandler[T, R, RP]) List(scope authz.Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := CallerFromContext(c)
		if err != nil {
			return err
		}

		recs, err := h.svc.List(c.Request().Context(), caller, scope, c.QueryParam("search"))
		if err != nil {
			return mapError(err)
		}
		return c.JSON(http.StatusOK, recs)
	}
}
