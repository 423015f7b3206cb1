package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geoprumo/route-service/internal/core/ports"
)

// GeocodeHandler exposes address search and suggestions.
type GeocodeHandler struct {
	service ports.GeocodeService
}

func NewGeocodeHandler(service ports.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{service: service}
}

// Search handles GET /api/v1/geocode/search.
//
// @Summary      Resolve an address or coordinate string
// @Tags         geocode
// @Produce      json
// @Param        q    query     string  true  "Address, place name or coordinates (min 3 characters)"
// @Success      200  {object}  placeResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/v1/geocode/search [get]
func (h *GeocodeHandler) Search(c echo.Context) error {
	var q geocodeQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	place, err := h.service.Search(c.Request().Context(), q.Q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, placeResponse{
		Name:      place.Name,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
	})
}

// Autocomplete handles GET /api/v1/geocode/autocomplete.
// It always answers 200; failures yield an empty list.
//
// @Summary      Suggest addresses for a partial query
// @Tags         geocode
// @Produce      json
// @Param        q    query    string  true  "Partial address"
// @Success      200  {array}  string
// @Router       /api/v1/geocode/autocomplete [get]
func (h *GeocodeHandler) Autocomplete(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Autocomplete(c.Request().Context(), c.QueryParam("q")))
}
