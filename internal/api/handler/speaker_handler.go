package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

type SpeakerHandler struct {
	service ports.SpeakerService
}

func NewSpeakerHandler(service ports.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{service: service}
}

type speakerRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	EventID      string `json:"event_id" validate:"required"`
	Organisation string `json:"organisation,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
	Image        string `json:"image,omitempty"`
}

func (h *SpeakerHandler) Create(c echo.Context) error {
	var req speakerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), &domain.Speaker{
		Name:         req.Name,
		Email:        req.Email,
		EventID:      req.EventID,
		Organisation: req.Organisation,
		JobTitle:     req.JobTitle,
		Image:        req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *SpeakerHandler) Get(c echo.Context) error {
	speaker, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, speaker)
}

// List returns all speakers, optionally filtered by ?event_id=.
func (h *SpeakerHandler) List(c echo.Context) error {
	speakers, err := h.service.List(c.Request().Context(), c.QueryParam("event_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, speakers)
}

func (h *SpeakerHandler) Update(c echo.Context) error {
	speaker, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	var req speakerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	speaker.Name = req.Name
	speaker.Email = req.Email
	speaker.EventID = req.EventID
	speaker.Organisation = req.Organisation
	speaker.JobTitle = req.JobTitle
	speaker.Image = req.Image

	updated, err := h.service.Update(c.Request().Context(), speaker)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *SpeakerHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
