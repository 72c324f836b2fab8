package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/session"
)

// flash queues a one-shot notice for the next rendered page. Failures only
// lose a notice, so they are logged and swallowed.
func flash(c echo.Context, sessions session.Store, level, message string) {
	if err := sessions.AddFlash(c.Request().Context(), currentToken(c), session.Flash{
		Level:   level,
		Message: message,
	}); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
}

// pageData assembles the common template payload: pending flashes plus any
// page-specific values.
func pageData(c echo.Context, sessions session.Store, extra map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{}
	for k, v := range extra {
		data[k] = v
	}
	flashes, err := sessions.PopFlashes(c.Request().Context(), currentToken(c))
	if err != nil {
		c.Logger().Errorf("pop flashes: %v", err)
	}
	data["Flashes"] = flashes
	if sess := currentSession(c); sess != nil {
		data["Authenticated"] = true
		data["Email"] = sess.Email
	}
	return data
}
