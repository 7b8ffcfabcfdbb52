package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/cmd/api/container"
	"github.com/touchly/directory/cmd/api/handlers"
	"github.com/touchly/directory/cmd/api/middleware"
)

// RegisterAuthRoutes registers login, account and admin provisioning routes
func RegisterAuthRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewAuthHandler(c.AuthService)
	cfg := c.Components.Config.Auth

	e.POST("/api/login", h.Login) // POST /api/login

	e.GET("/api/me", h.Me, middleware.RequireAuth(cfg.JWTSecret)) // GET /api/me

	// Admin routes guarded by the shared API key
	admin := e.Group("/admin", middleware.RequireAPIKey(cfg.AdminAPIKey))
	{
		admin.POST("/users", h.CreateUser) // POST /admin/users
	}
}
