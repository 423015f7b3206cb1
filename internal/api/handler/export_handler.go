package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geoprumo/route-service/internal/core/ports"
)

// ExportHandler renders optimized routes into files and map links.
type ExportHandler struct {
	service ports.ExportService
}

func NewExportHandler(service ports.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// bindPoints reads the JSON array of points every export endpoint accepts.
func bindPoints(c echo.Context) (exportRequest, error) {
	var req exportRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req.Points); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload: expected a JSON array of points")
	}
	if len(req.Points) == 0 {
		return req, echo.NewHTTPError(http.StatusBadRequest, "point list cannot be empty")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return req, nil
}

// Export handles POST /api/v1/export/:format.
//
// @Summary      Export a route as a file
// @Tags         export
// @Accept       json
// @Produce      octet-stream
// @Param        format  path      string          true  "csv, kml, gpx, geojson, mymaps or xlsx"
// @Param        body    body      []pointRequest  true  "Route points in order"
// @Success      200     {file}    file
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /api/v1/export/{format} [post]
func (h *ExportHandler) Export(c echo.Context) error {
	req, err := bindPoints(c)
	if err != nil {
		return err
	}

	file, err := h.service.Export(c.Param("format"), toDomainPoints(req.Points))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", file.Filename))
	return c.Blob(http.StatusOK, file.ContentType, file.Body)
}

// GoogleMapsLinks handles POST /api/v1/export/google-maps-links.
//
// @Summary      Split a route into Google Maps directions links
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        body  body      []pointRequest  true  "Route points in order"
// @Success      200   {array}   string
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/export/google-maps-links [post]
func (h *ExportHandler) GoogleMapsLinks(c echo.Context) error {
	req, err := bindPoints(c)
	if err != nil {
		return err
	}

	links, err := h.service.GoogleMapsLinks(toDomainPoints(req.Points))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, links)
}
