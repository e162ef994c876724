package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/SinghShreyansh/users-service/docs"
	"github.com/SinghShreyansh/users-service/internal/api/handler"
	"github.com/SinghShreyansh/users-service/internal/api/middleware"
	"github.com/SinghShreyansh/users-service/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Users ports.UserService
	Log   zerolog.Logger
	// Readiness lists the dependencies probed by GET /health/ready, by name.
	Readiness map[string]handler.Pinger
	// Registerer and Gatherer back the HTTP metrics and GET /metrics.
	// They default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Production bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(middleware.Secure(deps.Production))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "users_http",
		Registerer: deps.Registerer,
	}))

	// --- Users ---
	users := handler.NewUserHandler(deps.Users)
	e.GET("/users", users.List)
	e.POST("/users", users.Create)
	e.PUT("/users", users.Update)
	e.DELETE("/users", users.Delete)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
