package handler

import (
	"github.com/labstack/echo/v4"
)

// requestID returns the id assigned by the RequestID middleware, falling back
// to the inbound header when the middleware did not run.
func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
