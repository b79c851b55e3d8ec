package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"cityguide/internal/errors"
	"cityguide/internal/model"
	"cityguide/internal/service"
)

// AttractionHandler handles attraction endpoints.
type AttractionHandler struct {
	attractionService service.AttractionService
}

// NewAttractionHandler creates a new attraction handler.
func NewAttractionHandler(attractionService service.AttractionService) *AttractionHandler {
	return &AttractionHandler{attractionService: attractionService}
}

// AttractionRequest represents an attraction create/update payload.
// Coordinates are strings to keep exact decimal values across the wire.
type AttractionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	CityID      string `json:"city_id" validate:"required,uuid"`
	Latitude    string `json:"latitude" validate:"required"`
	Longitude   string `json:"longitude" validate:"required"`
}

func (r *AttractionRequest) parse() (categoryID, cityID uuid.UUID, lat, lon decimal.Decimal, err *echo.HTTPError) {
	categoryID, parseErr := uuid.Parse(r.CategoryID)
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid category_id",
			Code:  "INVALID_UUID",
		})
	}
	cityID, parseErr = uuid.Parse(r.CityID)
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid city_id",
			Code:  "INVALID_UUID",
		})
	}
	lat, parseErr = decimal.NewFromString(r.Latitude)
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid latitude",
			Code:  "INVALID_COORDINATE",
		})
	}
	lon, parseErr = decimal.NewFromString(r.Longitude)
	if parseErr != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid longitude",
			Code:  "INVALID_COORDINATE",
		})
	}
	return categoryID, cityID, lat, lon, nil
}

// CreateAttraction godoc
// @Summary Create an attraction under a category
// @Tags attractions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AttractionRequest true "Attraction data"
// @Success 201 {object} model.Attraction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /attractions [post]
func (h *AttractionHandler) CreateAttraction(c echo.Context) error {
	var req AttractionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if req.Image == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "image is required",
			Code:  "MISSING_FIELD",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "MISSING_FIELD",
		})
	}
	categoryID, cityID, lat, lon, httpErr := req.parse()
	if httpErr != nil {
		return httpErr
	}

	attraction := &model.Attraction{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  categoryID,
		CityID:      cityID,
		Latitude:    lat,
		Longitude:   lon,
	}
	created, err := h.attractionService.CreateAttraction(c.Request().Context(), attraction)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// ListAttractions godoc
// @Summary List attractions with category and city
// @Tags attractions
// @Produce json
// @Success 200 {array} model.Attraction
// @Failure 500 {object} errors.ErrorResponse
// @Router /attractions [get]
func (h *AttractionHandler) ListAttractions(c echo.Context) error {
	attractions, err := h.attractionService.ListAttractions(c.Request().Context())
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, attractions)
}

// UpdateAttraction godoc
// @Summary Update an attraction, moving it between categories if needed
// @Tags attractions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attraction ID"
// @Param request body AttractionRequest true "Attraction data"
// @Success 200 {object} model.Attraction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /attractions/{id} [put]
func (h *AttractionHandler) UpdateAttraction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid attraction id",
			Code:  "INVALID_UUID",
		})
	}

	var req AttractionRequest
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
	categoryID, cityID, lat, lon, httpErr := req.parse()
	if httpErr != nil {
		return httpErr
	}

	updated, err := h.attractionService.UpdateAttraction(c.Request().Context(), id, service.AttractionUpdate{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  categoryID,
		CityID:      cityID,
		Latitude:    lat,
		Longitude:   lon,
	})
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteAttraction godoc
// @Summary Delete an attraction and its reviews
// @Tags attractions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attraction ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /attractions/{id} [delete]
func (h *AttractionHandler) DeleteAttraction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid attraction id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.attractionService.DeleteAttraction(c.Request().Context(), id); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "attraction deleted"})
}

// SearchAttractions godoc
// @Summary Find attractions by city and category name
// @Tags attractions
// @Produce json
// @Param cityName query string true "City name (case-insensitive exact match)"
// @Param categoryName query string true "Category name (case-insensitive exact match)"
// @Success 200 {array} model.Attraction
// @Failure 400 {object} errors.ErrorResponse
// @Router /attractions/search [get]
func (h *AttractionHandler) SearchAttractions(c echo.Context) error {
	attractions, err := h.attractionService.SearchByCityAndCategory(
		c.Request().Context(),
		c.QueryParam("cityName"),
		c.QueryParam("categoryName"),
	)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, attractions)
}

// AttractionByName godoc
// @Summary Find attractions by name with nested reviews and reviewers
// @Tags attractions
// @Produce json
// @Param name query string true "Attraction name (case-insensitive exact match)"
// @Success 200 {array} model.Attraction
// @Failure 400 {object} errors.ErrorResponse
// @Router /attractions/by-name [get]
func (h *AttractionHandler) AttractionByName(c echo.Context) error {
	attractions, err := h.attractionService.FindByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, attractions)
}
