package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamhub/announcements-api/internal/api/handler"
	"github.com/teamhub/announcements-api/internal/api/middleware"
	"github.com/teamhub/announcements-api/internal/core/service"
	mongodb "github.com/teamhub/announcements-api/internal/infrastructure/db/mongo"
	redisdb "github.com/teamhub/announcements-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// corsOriginPattern is an extra allowed origin pattern for the hosting
// domain, on top of the permissive wildcard.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret, corsOriginPattern string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*", corsOriginPattern},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(echoprometheus.NewMiddleware("teamhub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	announcementRepo := mongodb.NewAnnouncementRepository(db)
	listCache := redisdb.NewAnnouncementCache(rdb)

	tokenService := service.NewTokenService(jwtSecret)
	authService := service.NewAuthService(userRepo, tokenService, log)
	announcementService := service.NewAnnouncementService(announcementRepo, listCache, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	adminHandler := handler.NewAdminHandler(userService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authRequired := middleware.Auth(authService)
	adminOnly := middleware.RequireAdmin()

	// --- Routes (common /api prefix) ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/signup", authHandler.Signup)
	apiGroup.POST("/auth/signin", authHandler.Signin)
	apiGroup.GET("/auth/user", authHandler.Me, authRequired)

	apiGroup.GET("/announcements", announcementHandler.List)
	apiGroup.POST("/announcements", announcementHandler.Create, authRequired)
	apiGroup.PUT("/announcements/:id", announcementHandler.Update, authRequired)
	apiGroup.DELETE("/announcements/:id", announcementHandler.Delete, authRequired)

	apiGroup.GET("/admin/users", adminHandler.ListUsers, authRequired, adminOnly)
	apiGroup.PUT("/admin/users/:id/role", adminHandler.UpdateRole, authRequired, adminOnly)

	// --- Status and health probes (no auth required) ---
	apiGroup.GET("/", healthHandler.Root)
	apiGroup.GET("/health", healthHandler.Health)
	apiGroup.GET("/health/ready", healthHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
