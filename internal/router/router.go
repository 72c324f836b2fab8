package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/handler"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessions session.Store,
	authHandler *handler.AuthHandler,
	reportHandler *handler.ReportHandler,
	chatHandler *handler.ChatHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(handler.NoCache)
	e.Use(handler.WithSession(sessions))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", handler.Health)

	e.GET("/", authHandler.Index)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)
	e.POST("/firebase-login", authHandler.FirebaseLogin)

	// Protected routes (require an authenticated session)
	protected := e.Group("", handler.RequireSession)
	protected.GET("/report", reportHandler.ReportPage)
	protected.POST("/report", reportHandler.SubmitReport)
	protected.GET("/check", reportHandler.Check)
	protected.GET("/myreport", reportHandler.MyReports)
	protected.GET("/chatai", chatHandler.ChatPage)
	protected.POST("/chatai", chatHandler.Chat)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
