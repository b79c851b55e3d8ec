package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cityguide/internal/errors"
	"cityguide/internal/model"
	"cityguide/internal/service"
)

// CityHandler handles city endpoints.
type CityHandler struct {
	cityService service.CityService
}

// NewCityHandler creates a new city handler.
func NewCityHandler(cityService service.CityService) *CityHandler {
	return &CityHandler{cityService: cityService}
}

// CityRequest represents a city create/update payload. Image is the opaque
// reference produced by the upload collaborator.
type CityRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"required"`
}

// CreateCity godoc
// @Summary Create a city
// @Tags cities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CityRequest true "City data"
// @Success 201 {object} model.City
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cities [post]
func (h *CityHandler) CreateCity(c echo.Context) error {
	var req CityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "MISSING_FIELD",
		})
	}

	city := &model.City{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	}
	created, err := h.cityService.CreateCity(c.Request().Context(), city)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// ListCities godoc
// @Summary List cities with their categories
// @Tags cities
// @Produce json
// @Success 200 {array} model.City
// @Failure 500 {object} errors.ErrorResponse
// @Router /cities [get]
func (h *CityHandler) ListCities(c echo.Context) error {
	cities, err := h.cityService.ListCities(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cities)
}

// UpdateCity godoc
// @Summary Update a city
// @Tags cities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "City ID"
// @Param request body CityRequest true "City data"
// @Success 200 {object} model.City
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cities/{id} [put]
func (h *CityHandler) UpdateCity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid city id",
			Code:  "INVALID_UUID",
		})
	}

	// Image may be omitted on update to keep the stored reference.
	var req struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description" validate:"required"`
		Image       string `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "MISSING_FIELD",
		})
	}

	city, err := h.cityService.UpdateCity(c.Request().Context(), id, req.Name, req.Description, req.Image)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, city)
}

// DeleteCity godoc
// @Summary Delete a city and everything under it
// @Tags cities
// @Produce json
// @Security BearerAuth
// @Param id path string true "City ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cities/{id} [delete]
func (h *CityHandler) DeleteCity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid city id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.cityService.DeleteCity(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "city deleted"})
}
