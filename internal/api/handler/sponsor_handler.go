package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

type SponsorHandler struct {
	service ports.SponsorService
}

func NewSponsorHandler(service ports.SponsorService) *SponsorHandler {
	return &SponsorHandler{service: service}
}

type sponsorRequest struct {
	Title        string `json:"title" validate:"required"`
	Organisation string `json:"organisation" validate:"required"`
	Category     string `json:"category,omitempty"`
	Industry     string `json:"industry,omitempty"`
}

func (h *SponsorHandler) Create(c echo.Context) error {
	var req sponsorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), &domain.Sponsor{
		Title:        req.Title,
		Organisation: req.Organisation,
		Category:     req.Category,
		Industry:     req.Industry,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *SponsorHandler) Get(c echo.Context) error {
	sponsor, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sponsor)
}

func (h *SponsorHandler) List(c echo.Context) error {
	sponsors, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sponsors)
}

func (h *SponsorHandler) Update(c echo.Context) error {
	sponsor, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	var req sponsorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sponsor.Title = req.Title
	sponsor.Organisation = req.Organisation
	sponsor.Category = req.Category
	sponsor.Industry = req.Industry

	updated, err := h.service.Update(c.Request().Context(), sponsor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *SponsorHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
