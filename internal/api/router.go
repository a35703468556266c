package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/staffboard/statusboard/docs"
	"github.com/staffboard/statusboard/internal/api/handler"
	"github.com/staffboard/statusboard/internal/api/middleware"
	"github.com/staffboard/statusboard/internal/core/domain"
	"github.com/staffboard/statusboard/internal/core/service"
	mongodb "github.com/staffboard/statusboard/internal/infrastructure/db/mongo"
	redisdb "github.com/staffboard/statusboard/internal/infrastructure/db/redis"
	"github.com/staffboard/statusboard/internal/infrastructure/feed"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, hub *feed.Hub, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("statusboard"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	rosterRepo := mongodb.NewRosterRepository(db)
	blacklist := redisdb.NewTokenBlacklist(rdb)
	notifier := redisdb.NewChangeNotifier(rdb)

	authService := service.NewAuthService(authRepo, blacklist, jwtSecret, tokenTTL)
	rosterService := service.NewRosterService(rosterRepo, notifier, log)
	seeder := service.NewSeeder(rosterRepo, notifier, log)

	authHandler := handler.NewAuthHandler(authService)
	rosterHandler := handler.NewRosterHandler(rosterService, seeder, hub, log)
	authMiddleware := middleware.Auth(jwtSecret, blacklist)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Roster routes (session required) ---
	apiGroup := e.Group("/api", authMiddleware)
	apiGroup.GET("/roster", rosterHandler.List)
	apiGroup.PATCH("/roster/:id/status", rosterHandler.UpdateStatus)
	apiGroup.GET("/roster/stream", rosterHandler.Stream)
	apiGroup.POST("/roster/seed", rosterHandler.Seed, middleware.RBAC(domain.RoleAdmin))

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
