package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anrssnbv/flight-requests-backend/internal/api/handler"
	"github.com/anrssnbv/flight-requests-backend/internal/api/middleware"
	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
	"github.com/anrssnbv/flight-requests-backend/internal/core/ports"
)

// Deps carries everything the router needs; services and stores are wired in
// cmd/api so their lifecycles (dispatcher workers, connections) stay owned by
// main.
type Deps struct {
	AuthService    ports.AuthService
	RequestService ports.RequestService
	Sessions       ports.SessionStore
	Mongo          *mongo.Database
	Redis          *redis.Client
	JWTSecret      string
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("flightops"))

	auth := middleware.Auth(deps.JWTSecret, deps.Sessions)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout, auth)

	// --- Request routes ---
	requestHandler := handler.NewRequestHandler(deps.RequestService)
	requests := e.Group("/api/requests", auth)
	requests.GET("", requestHandler.List, middleware.RBAC(domain.RoleClient, domain.RoleAdmin))
	requests.POST("", requestHandler.Create, middleware.RBAC(domain.RoleClient))
	requests.PATCH("/:id", requestHandler.Decide, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
