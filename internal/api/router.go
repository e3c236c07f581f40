package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sweetshop/inventory-system/docs"
	"github.com/sweetshop/inventory-system/internal/api/handler"
	"github.com/sweetshop/inventory-system/internal/api/middleware"
	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
	"github.com/sweetshop/inventory-system/internal/core/service"
	mongodb "github.com/sweetshop/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/sweetshop/inventory-system/internal/infrastructure/db/redis"
)

// Deps carries the external collaborators the router wires together.
type Deps struct {
	DB                *mongo.Database
	Redis             *redis.Client
	Tokens            ports.TokenService
	Alerts            ports.AlertDispatcher
	LowStockThreshold int
	Logger            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The access policy lives entirely in the route table below: the identity
// middleware never rejects, RequireAuth/RequireRole do.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("sweetshop"))
	e.Use(middleware.Identity(deps.Tokens))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	sweetRepo := mongodb.NewSweetRepository(deps.DB)
	catalogCache := redisdb.NewCatalogCache(deps.Redis)

	authService := service.NewAuthService(userRepo, deps.Tokens, deps.Logger)
	sweetService := service.NewSweetService(sweetRepo, catalogCache, deps.Alerts, deps.LowStockThreshold, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(sweetService)

	authenticated := middleware.RequireAuth()
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes (anonymous) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Inventory routes ---
	sweets := e.Group("/api/sweets")
	sweets.GET("", sweetHandler.List, authenticated)
	sweets.GET("/search", sweetHandler.Search, authenticated)
	sweets.POST("/:id/purchase", sweetHandler.Purchase, authenticated)
	sweets.POST("", sweetHandler.Create, adminOnly)
	sweets.PUT("/:id", sweetHandler.Update, adminOnly)
	sweets.DELETE("/:id", sweetHandler.Delete, adminOnly)
	sweets.POST("/:id/restock", sweetHandler.Restock, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
