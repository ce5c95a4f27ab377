package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

// UserHandler exposes the user profile endpoints. Users may read and edit
// themselves; listing and deleting are admin operations guarded by RBAC.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Age      int    `json:"age,omitempty" validate:"omitempty,gt=0"`
	Gender   string `json:"gender,omitempty"`
}

// Me returns the authenticated principal.
func (h *UserHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns all users (admin only).
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update edits a profile. Non-admins may only edit themselves.
func (h *UserHandler) Update(c echo.Context) error {
	principal, err := ctxUser(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if principal.Role != domain.RoleAdmin && principal.ID != id {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	user.Username = req.Username
	user.Age = req.Age
	user.Gender = req.Gender

	updated, err := h.users.Update(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a user (admin only).
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
