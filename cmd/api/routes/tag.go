package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/cmd/api/container"
	"github.com/touchly/directory/cmd/api/handlers"
	"github.com/touchly/directory/cmd/api/middleware"
)

// RegisterTagRoutes registers all tag-related routes
func RegisterTagRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewTagHandler(c.TagService)
	auth := middleware.RequireAuth(c.Components.Config.Auth.JWTSecret)

	tags := e.Group("/api/tags")
	{
		tags.GET("", h.ListTags)                 // GET /api/tags
		tags.POST("", h.CreateTag, auth)         // POST /api/tags
		tags.DELETE("/:id", h.DeleteTag, auth)   // DELETE /api/tags/{id}
	}
}
