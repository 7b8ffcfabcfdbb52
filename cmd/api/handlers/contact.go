package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/cmd/api/middleware"
	"github.com/touchly/directory/cmd/api/service"
	"github.com/touchly/directory/common/apperr"
)

// ContactHandler handles contact CRUD, search and bookmark requests
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// CreateContact creates a contact owned by the caller
// POST /api/contacts
func (h *ContactHandler) CreateContact(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req service.CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(err, "invalid request body")
	}

	contact, err := h.contacts.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, contact)
}

// GetContact returns a contact with its tags, links and address
// GET /api/contacts/:id
func (h *ContactHandler) GetContact(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation(err, "invalid contact id")
	}

	contact, err := h.contacts.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, contact)
}

// UpdateContact applies a partial update to a contact owned by the caller
// PUT /api/contacts/:id
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation(err, "invalid contact id")
	}

	var req service.UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(err, "invalid request body")
	}

	contact, err := h.contacts.Update(c.Request().Context(), userID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, contact)
}

// DeleteContact removes a contact owned by the caller
// DELETE /api/contacts/:id
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation(err, "invalid contact id")
	}

	if err := h.contacts.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SearchContacts runs the combined text/tag/geo search
// GET /api/contacts?search=&tag=&lat=&lng=&radius=&page=&page_size=
func (h *ContactHandler) SearchContacts(c echo.Context) error {
	params := service.SearchParams{
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("tag"); raw != "" {
		tagID, err := uuid.Parse(raw)
		if err != nil {
			return apperr.Validation(err, "invalid tag")
		}
		params.TagID = &tagID
	}

	for _, q := range []struct {
		name string
		dst  **float64
	}{
		{"lat", &params.Lat},
		{"lng", &params.Lng},
		{"radius", &params.Radius},
	} {
		raw := c.QueryParam(q.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apperr.Validation(err, "invalid "+q.name)
		}
		*q.dst = &v
	}

	params.Page = intQueryParam(c, "page")
	params.PageSize = intQueryParam(c, "page_size")

	page, err := h.contacts.Search(c.Request().Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// SaveContact bookmarks a contact for the caller
// POST /api/contacts/:id/save
func (h *ContactHandler) SaveContact(c echo.Context) error {
	userID, contactID, err := callerAndContact(c)
	if err != nil {
		return err
	}

	if err := h.contacts.Save(c.Request().Context(), userID, contactID); err != nil {
		return err
	}

	return c.NoContent(http.StatusCreated)
}

// UnsaveContact removes a bookmark
// DELETE /api/contacts/:id/save
func (h *ContactHandler) UnsaveContact(c echo.Context) error {
	userID, contactID, err := callerAndContact(c)
	if err != nil {
		return err
	}

	if err := h.contacts.Unsave(c.Request().Context(), userID, contactID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListSavedContacts lists the caller's bookmarked contacts
// GET /api/contacts/saved
func (h *ContactHandler) ListSavedContacts(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	contacts, err := h.contacts.ListSaved(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, contacts)
}

type visibilityRequest struct {
	IsPublished bool `json:"is_published"`
}

// SetVisibility flips the publication flag of a contact owned by the caller
// PUT /api/contacts/:id/visibility
func (h *ContactHandler) SetVisibility(c echo.Context) error {
	userID, contactID, err := callerAndContact(c)
	if err != nil {
		return err
	}

	var req visibilityRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(err, "invalid request body")
	}

	if err := h.contacts.SetVisibility(c.Request().Context(), userID, contactID, req.IsPublished); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// AttachAddress binds a geocoded address to a contact owned by the caller
// POST /api/contacts/:id/address
func (h *ContactHandler) AttachAddress(c echo.Context) error {
	userID, contactID, err := callerAndContact(c)
	if err != nil {
		return err
	}

	var req service.CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(err, "invalid request body")
	}

	address, err := h.contacts.AttachAddress(c.Request().Context(), userID, contactID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, address)
}

func callerAndContact(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.Validation(err, "invalid contact id")
	}

	return userID, contactID, nil
}

func intQueryParam(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
