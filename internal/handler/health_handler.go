package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness with a fixed shape, regardless of database or
// session state. Used by the deployment platform.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "safe-pass",
	})
}
