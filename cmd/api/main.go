package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/touchly/directory/cmd/api/container"
	"github.com/touchly/directory/cmd/api/middleware"
	"github.com/touchly/directory/cmd/api/routes"
	"github.com/touchly/directory/common/apperr"
	"github.com/touchly/directory/common/bootstrap"
	"github.com/touchly/directory/common/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Bootstrap common components (config, logger, DB, Redis)
	components, err := bootstrap.Setup(ctx, "api",
		bootstrap.WithDBInitHook(func(database *db.DB) error {
			return database.EnsureSchema(ctx)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap api: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(context.Background())

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(ctx, components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	e := setupEcho(serviceContainer)

	setupMiddleware(e, serviceContainer)
	setupHealthCheck(e, components)
	registerRoutes(e, serviceContainer)

	startServer(ctx, e, components)
}

// setupEcho initializes the Echo server with the central error handler
func setupEcho(c *container.Container) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	log := c.Components.Logger

	// All handler and middleware errors funnel through here so every
	// response body keeps the same {"error": message} shape
	e.HTTPErrorHandler = func(err error, ec echo.Context) {
		if ec.Response().Committed {
			return
		}

		code := apperr.CodeOf(err)
		msg := apperr.MessageOf(err)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = fmt.Sprintf("%v", he.Message)
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed", "method", ec.Request().Method, "path", ec.Path(), "error", err)
		}

		if jsonErr := ec.JSON(code, map[string]string{"error": msg}); jsonErr != nil {
			log.Error("failed to write error response", "error", jsonErr)
		}
	}

	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo, c *container.Container) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())
	e.Use(middleware.RateLimit(c.RateLimiter, c.Components.Config.RateLimit, c.Components.Logger))
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, components *bootstrap.Components) {
	e.GET("/health", func(c echo.Context) error {
		if err := components.Health(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": components.Config.Service.Name,
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, c *container.Container) {
	routes.RegisterAuthRoutes(e, c)
	routes.RegisterTagRoutes(e, c)
	routes.RegisterContactRoutes(e, c)
	routes.RegisterUploadRoutes(e, c)
}

// startServer starts the Echo server and shuts it down on SIGINT/SIGTERM
func startServer(ctx context.Context, e *echo.Echo, components *bootstrap.Components) {
	port := components.Config.Service.Port
	components.Logger.Info("starting api", "port", port)

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			components.Logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		components.Logger.Error("server shutdown error", "error", err)
	}
}
