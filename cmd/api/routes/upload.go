package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/cmd/api/container"
	"github.com/touchly/directory/cmd/api/handlers"
	"github.com/touchly/directory/cmd/api/middleware"
)

// RegisterUploadRoutes registers presigned upload routes
func RegisterUploadRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewUploadHandler(c.UploadService)
	auth := middleware.RequireAuth(c.Components.Config.Auth.JWTSecret)

	e.POST("/api/uploads/get-url", h.GetUploadURL, auth) // POST /api/uploads/get-url
}
