package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/cmd/api/container"
	"github.com/touchly/directory/cmd/api/handlers"
	"github.com/touchly/directory/cmd/api/middleware"
)

// RegisterContactRoutes registers contact CRUD, search, bookmark and
// address routes
func RegisterContactRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewContactHandler(c.ContactService)
	auth := middleware.RequireAuth(c.Components.Config.Auth.JWTSecret)

	contacts := e.Group("/api/contacts")
	{
		contacts.GET("", h.SearchContacts)  // GET /api/contacts?search=&tag=&lat=&lng=&radius=
		contacts.GET("/:id", h.GetContact)  // GET /api/contacts/{id}

		contacts.POST("", h.CreateContact, auth)        // POST /api/contacts
		contacts.PUT("/:id", h.UpdateContact, auth)     // PUT /api/contacts/{id}
		contacts.DELETE("/:id", h.DeleteContact, auth)  // DELETE /api/contacts/{id}

		contacts.GET("/saved", h.ListSavedContacts, auth)   // GET /api/contacts/saved
		contacts.POST("/:id/save", h.SaveContact, auth)     // POST /api/contacts/{id}/save
		contacts.DELETE("/:id/save", h.UnsaveContact, auth) // DELETE /api/contacts/{id}/save

		contacts.PUT("/:id/visibility", h.SetVisibility, auth) // PUT /api/contacts/{id}/visibility
		contacts.POST("/:id/address", h.AttachAddress, auth)   // POST /api/contacts/{id}/address
	}
}
