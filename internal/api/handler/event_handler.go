package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

// EventHandler handles HTTP requests for event CRUD.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

type eventRequest struct {
	Title               string    `json:"title" validate:"required"`
	Image               string    `json:"image,omitempty"`
	Description         string    `json:"description" validate:"required"`
	Location            string    `json:"location" validate:"required"`
	AgeLimit            string    `json:"age_limit,omitempty"`
	Capacity            int       `json:"capacity" validate:"required,gt=0"`
	SponsorID           string    `json:"sponsor_id,omitempty"`
	Date                time.Time `json:"date" validate:"required"`
	Price               int       `json:"price" validate:"gte=0"`
	EventPlannerName    string    `json:"event_planner_name,omitempty"`
	EventPlannerContact string    `json:"event_planner_contact,omitempty"`
}

func (r *eventRequest) apply(event *domain.Event) {
	event.Title = r.Title
	event.Image = r.Image
	event.Description = r.Description
	event.Location = r.Location
	event.AgeLimit = r.AgeLimit
	event.Capacity = r.Capacity
	event.SponsorID = r.SponsorID
	event.Date = r.Date
	event.Price = r.Price
	event.EventPlannerName = r.EventPlannerName
	event.EventPlannerContact = r.EventPlannerContact
}

// Create registers a new event owned by the authenticated user.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      eventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  map[string]string
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	principal, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event := &domain.Event{UserID: principal.ID}
	req.apply(event)

	created, err := h.service.Create(c.Request().Context(), event)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) List(c echo.Context) error {
	events, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Update edits an event. Only the owner or an admin may edit.
func (h *EventHandler) Update(c echo.Context) error {
	principal, err := ctxUser(c)
	if err != nil {
		return err
	}

	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if principal.Role != domain.RoleAdmin && event.UserID != principal.ID {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	req.apply(event)

	updated, err := h.service.Update(c.Request().Context(), event)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an event. Only the owner or an admin may delete.
func (h *EventHandler) Delete(c echo.Context) error {
	principal, err := ctxUser(c)
	if err != nil {
		return err
	}

	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if principal.Role != domain.RoleAdmin && event.UserID != principal.ID {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := h.service.Delete(c.Request().Context(), event.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
