package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/prysm/crm-system/internal/api/handler"
	"github.com/prysm/crm-system/internal/api/middleware"
	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/infrastructure/http/handlers"
)

// Handlers carries the constructed handlers the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Task     *handler.TaskHandler
	User     *handler.UserHandler
	Health   *handlers.HealthHandler
	Ready    *handlers.HealthDependenciesHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Every protected route is bound to its operation id in the role policy
// table through the Authorize middleware; authorization happens before any
// handler or data access runs.
func NewRouter(h Handlers, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crm"))

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	e.GET("/health", h.Health.Liveness)       // liveness: is the process alive?
	e.GET("/health/ready", h.Ready.Readiness) // readiness: are dependencies up?

	// --- Auth routes (open) ---
	e.POST("/api/auth/register", h.Auth.Register)
	e.POST("/api/auth/login", h.Auth.Login)

	// --- Protected routes ---
	auth := middleware.Auth(jwtSecret)
	api := e.Group("/api", auth)

	api.POST("/customers", h.Customer.Create, middleware.Authorize(domain.OpCustomerCreate))
	api.GET("/customers", h.Customer.List, middleware.Authorize(domain.OpCustomerList))
	api.GET("/customers/:id", h.Customer.Get, middleware.Authorize(domain.OpCustomerGet))
	api.DELETE("/customers/:id", h.Customer.Delete, middleware.Authorize(domain.OpCustomerDelete))

	api.POST("/tasks", h.Task.Create, middleware.Authorize(domain.OpTaskCreate))
	api.GET("/tasks", h.Task.List, middleware.Authorize(domain.OpTaskList))
	api.GET("/tasks/:id", h.Task.Get, middleware.Authorize(domain.OpTaskGet))
	api.PATCH("/tasks/:id/status", h.Task.UpdateStatus, middleware.Authorize(domain.OpTaskUpdateStatus))
	api.GET("/tasks/:id/activity", h.Task.Activity, middleware.Authorize(domain.OpTaskActivity))

	api.GET("/users", h.User.List, middleware.Authorize(domain.OpUserList))
	api.GET("/users/:id", h.User.Get, middleware.Authorize(domain.OpUserGet))
	api.PATCH("/users/:id", h.User.UpdateRole, middleware.Authorize(domain.OpUserUpdateRole))

	return e
}
