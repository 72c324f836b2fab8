package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/errors"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/service"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/session"
)

// AuthHandler handles registration, both login paths and logout.
type AuthHandler struct {
	authService service.AuthService
	sessions    session.Store
	sessionTTL  time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions session.Store, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, sessionTTL: sessionTTL}
}

// LoginForm represents a password login submission.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm represents a registration submission. Email format is not
// checked beyond presence, matching the login path.
type RegisterForm struct {
	Email        string `form:"email" validate:"required"`
	Password     string `form:"password" validate:"required"`
	Confirmation string `form:"confirmation" validate:"required"`
}

// FirebaseLoginRequest represents a federated login request.
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken"`
}

// Index redirects to the report listing when authenticated, otherwise to the
// login page.
func (h *AuthHandler) Index(c echo.Context) error {
	if currentSession(c) != nil {
		return c.Redirect(http.StatusFound, "/check")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// LoginPage resets any existing session and renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	h.resetSession(c)
	return c.Render(http.StatusOK, "login", pageData(c, h.sessions, nil))
}

// Login authenticates a password login and establishes the session. Any
// pre-existing session is discarded before the attempt, so a failed login
// always leaves the session empty.
func (h *AuthHandler) Login(c echo.Context) error {
	h.resetSession(c)

	var form LoginForm
	if err := c.Bind(&form); err != nil {
		flash(c, h.sessions, "warning", "Please enter a valid email address and password")
		return c.Redirect(http.StatusFound, "/login")
	}
	if err := c.Validate(&form); err != nil {
		flash(c, h.sessions, "warning", "Please enter a valid email address and password")
		return c.Redirect(http.StatusFound, "/login")
	}

	user, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.Logger().Errorf("login: %v", err)
		}
		flash(c, h.sessions, "warning", "Invalid email and/or password")
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := h.establishSession(c, user.ID, ""); err != nil {
		c.Logger().Errorf("establish session: %v", err)
		flash(c, h.sessions, "warning", "Login failed, please try again")
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Redirect(http.StatusFound, "/check")
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", pageData(c, h.sessions, nil))
}

// Register validates the submission and creates the user. Validation
// failures flash and redirect back to the form, never a 4xx.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		flash(c, h.sessions, "warning", "Please fill all required fields")
		return c.Redirect(http.StatusFound, "/register")
	}
	if err := c.Validate(&form); err != nil {
		flash(c, h.sessions, "warning", "Please fill all required fields")
		return c.Redirect(http.StatusFound, "/register")
	}
	if form.Password != form.Confirmation {
		flash(c, h.sessions, "warning", "Re-entered password does not match")
		return c.Redirect(http.StatusFound, "/register")
	}

	if _, err := h.authService.Register(c.Request().Context(), form.Email, form.Password); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			flash(c, h.sessions, "warning", "Email already exists")
			return c.Redirect(http.StatusFound, "/register")
		}
		c.Logger().Errorf("register: %v", err)
		flash(c, h.sessions, "danger", "Error during registration")
		return c.Redirect(http.StatusFound, "/login")
	}

	flash(c, h.sessions, "success", "Registration successful! Please log in.")
	return c.Redirect(http.StatusFound, "/login")
}

// Logout clears the session unconditionally and redirects home.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c.Request().Context(), currentToken(c)); err != nil {
		c.Logger().Errorf("destroy session: %v", err)
	}
	return c.Redirect(http.StatusFound, "/")
}

// FirebaseLogin verifies a federated identity token and establishes the
// session, auto-provisioning the account on first login.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "No token provided"})
	}

	user, email, err := h.authService.LoginWithIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "Invalid token"})
		}
		c.Logger().Errorf("firebase login: %v", err)
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "Authentication failed"})
	}

	if err := h.establishSession(c, user.ID, email); err != nil {
		c.Logger().Errorf("establish session: %v", err)
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "Authentication failed"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"redirect": "/check",
	})
}

// resetSession destroys the current session record and drops it from the
// request context so nothing downstream sees the stale state.
func (h *AuthHandler) resetSession(c echo.Context) {
	if err := h.sessions.Destroy(c.Request().Context(), currentToken(c)); err != nil {
		c.Logger().Errorf("reset session: %v", err)
	}
	clearSession(c)
}

// establishSession rotates the cookie token and binds it to the user.
func (h *AuthHandler) establishSession(c echo.Context, userID uint, email string) error {
	ctx := c.Request().Context()
	if err := h.sessions.Destroy(ctx, currentToken(c)); err != nil {
		return err
	}
	token := h.sessions.NewToken()
	if err := h.sessions.Create(ctx, token, userID, email); err != nil {
		return err
	}
	setSessionCookie(c, token, h.sessionTTL)
	c.Set(ctxKeyToken, token)
	return nil
}
