package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/geoprumo/route-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps each domain error kind to its HTTP status. Checked in order.
var errorStatus = []struct {
	kind error
	code int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrEmptyResult, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrUnsupportedFormat, http.StatusNotFound},
	{domain.ErrConnectivity, http.StatusBadGateway},
	{domain.ErrDataFormat, http.StatusBadGateway},
	{domain.ErrConfiguration, http.StatusServiceUnavailable},
}

// NewHTTPErrorHandler renders every error as {"error": "<message>"}. Domain
// kinds keep their message; anything unknown is logged and answered with a
// generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		switch {
		case code == http.StatusInternalServerError:
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		case code == http.StatusBadGateway:
			log.Warn().Err(err).Str("path", c.Path()).Msg("upstream failure")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	// Echo's own errors: bind failures, router 404/405, body limit.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.kind) {
			return m.code, err.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}
