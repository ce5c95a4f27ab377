package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

type AttendeeHandler struct {
	service ports.AttendeeService
}

func NewAttendeeHandler(service ports.AttendeeService) *AttendeeHandler {
	return &AttendeeHandler{service: service}
}

type attendeeRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	EventID string `json:"event_id" validate:"required"`
}

// Create registers the authenticated user as an attendee of an event.
func (h *AttendeeHandler) Create(c echo.Context) error {
	principal, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req attendeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), &domain.Attendee{
		Name:    req.Name,
		Email:   req.Email,
		UserID:  principal.ID,
		EventID: req.EventID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AttendeeHandler) Get(c echo.Context) error {
	attendee, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attendee)
}

// List returns all attendees, optionally filtered by ?event_id=.
func (h *AttendeeHandler) List(c echo.Context) error {
	attendees, err := h.service.List(c.Request().Context(), c.QueryParam("event_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attendees)
}

// Delete removes an attendance record. Only its owner or an admin may delete.
func (h *AttendeeHandler) Delete(c echo.Context) error {
	principal, err := ctxUser(c)
	if err != nil {
		return err
	}

	attendee, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if principal.Role != domain.RoleAdmin && attendee.UserID != principal.ID {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := h.service.Delete(c.Request().Context(), attendee.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
