package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/session"
)

const (
	// SessionCookie is the cookie carrying the opaque session token.
	SessionCookie = "session"

	ctxKeyToken   = "session_token"
	ctxKeySession = "session"
)

// WithSession guarantees every request carries a session token (issuing a
// cookie on first contact so flashes work for anonymous visitors) and
// resolves the server-side session record into the echo context.
func WithSession(sessions session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				token = cookie.Value
			}
			if token == "" {
				token = sessions.NewToken()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
				})
			}
			c.Set(ctxKeyToken, token)

			sess, err := sessions.Get(c.Request().Context(), token)
			if err != nil {
				c.Logger().Errorf("resolve session: %v", err)
			}
			if sess != nil {
				c.Set(ctxKeySession, sess)
			}
			return next(c)
		}
	}
}

// RequireSession redirects to the login page when no authenticated session
// is present. Absence is not an error surfaced to the caller.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentSession(c) == nil {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// NoCache disables response caching on every route.
func NoCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		return next(c)
	}
}

func currentToken(c echo.Context) string {
	token, _ := c.Get(ctxKeyToken).(string)
	return token
}

func currentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(ctxKeySession).(*session.Session)
	return sess
}

func clearSession(c echo.Context) {
	c.Set(ctxKeySession, nil)
}

func setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(ttl),
	})
}
