package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geoprumo/route-service/internal/core/ports"
)

// ProcessHandler runs the ingest-and-optimize pipeline.
type ProcessHandler struct {
	service ports.ProcessService
}

func NewProcessHandler(service ports.ProcessService) *ProcessHandler {
	return &ProcessHandler{service: service}
}

// Optimize handles POST /api/v1/process/optimize.
//
// @Summary      Ingest waypoint sources and optimize the route
// @Description  Accepts files (base64), shared map links, free text and previously processed points.
// @Tags         process
// @Accept       json
// @Produce      json
// @Param        body  body      processRequest  true  "Sources and optimization options"
// @Success      200   {object}  processResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/v1/process/optimize [post]
func (h *ProcessHandler) Optimize(c echo.Context) error {
	var req processRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input, err := toProcessInput(req)
	if err != nil {
		return err
	}

	result, err := h.service.Optimize(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProcessResponse(result, requestID(c)))
}
