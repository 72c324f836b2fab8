package main

import (
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/auth"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/cache"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/chat"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/config"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/db"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/handler"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/model"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/repository"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/router"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/service"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/session"
)

// Templates adapts html/template to echo's Renderer.
type Templates struct {
	*template.Template
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.ExecuteTemplate(w, name, data)
}

func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Report{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessions := session.NewStore(cacheClient, time.Duration(cfg.SessionTTLHours)*time.Hour)
	if cfg.SessionSecret == "" && cfg.Env != "development" {
		log.Println("WARNING: SESSION_SECRET not set")
	}

	projectID, err := auth.ProjectIDFromCredentials(cfg.FirebaseCredentials, cfg.FirebaseServiceAccount)
	if err != nil {
		// Federated login will reject every token, password login still works.
		log.Printf("firebase credentials: %v", err)
	}
	verifier := auth.NewGoogleIdentityVerifier(projectID)

	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set, chat relay will fail")
	}
	chatClient := chat.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	userRepo := repository.NewUserRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)

	authService := service.NewAuthService(userRepo, verifier)
	reportService := service.NewReportService(reportRepo)

	authHandler := handler.NewAuthHandler(authService, sessions, time.Duration(cfg.SessionTTLHours)*time.Hour)
	reportHandler := handler.NewReportHandler(reportService, sessions, cfg.MapsAPIKey)
	chatHandler := handler.NewChatHandler(chatClient, sessions)

	e := echo.New()
	e.Renderer = &Templates{template.Must(template.ParseGlob("views/*.html"))}

	router.Register(e, sessions, authHandler, reportHandler, chatHandler)

	log.Printf("starting safe-pass on port %s (env %s)", cfg.ServerPort, cfg.Env)
	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
