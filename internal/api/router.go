package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gatherly/events-api/docs"
	"github.com/gatherly/events-api/internal/api/handler"
	"github.com/gatherly/events-api/internal/api/middleware"
	"github.com/gatherly/events-api/internal/core/domain"
	"github.com/gatherly/events-api/internal/core/ports"
	"github.com/gatherly/events-api/internal/core/service"
	mongodb "github.com/gatherly/events-api/internal/infrastructure/db/mongo"
)

// RouterConfig carries the settings the router needs beyond its backing stores.
type RouterConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	RateLimiter middleware.Limiter
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("events_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	authService := service.NewAuthService(userRepo, notifier, cfg.JWTSecret, cfg.TokenTTL, log)
	adminService := service.NewAdminService(userRepo, auditRepo, notifier, log)
	eventService := service.NewEventService(eventRepo, userRepo, notifier, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	eventHandler := handler.NewEventHandler(eventService)

	authRequired := middleware.Auth(cfg.JWTSecret, userRepo)

	// --- Auth routes (rate limited per client IP) ---
	auth := e.Group("/auth")
	if cfg.RateLimiter != nil {
		auth.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Admin routes ---
	admin := e.Group("/admin", authRequired, middleware.RequireRole(domain.RoleSuperadmin))
	admin.PUT("/users/:userId/role", adminHandler.ChangeRole)

	// --- Event routes ---
	events := e.Group("/events")
	events.GET("", eventHandler.List)
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create, authRequired, middleware.RequireRole(domain.RoleOrganizer))
	events.PUT("/:id", eventHandler.Update, authRequired)    // ownership enforced in the service
	events.DELETE("/:id", eventHandler.Delete, authRequired) // ownership enforced in the service
	events.POST("/:id/register", eventHandler.Join, authRequired)
	events.POST("/:id/unregister", eventHandler.Leave, authRequired)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
