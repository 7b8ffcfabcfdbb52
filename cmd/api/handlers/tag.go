package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/cmd/api/service"
	"github.com/touchly/directory/common/apperr"
)

// TagHandler handles tag requests
type TagHandler struct {
	tags *service.TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

type createTagRequest struct {
	Name string `json:"name"`
}

// CreateTag creates a new tag
// POST /api/tags
func (h *TagHandler) CreateTag(c echo.Context) error {
	var req createTagRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(err, "invalid request body")
	}

	tag, err := h.tags.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, tag)
}

// ListTags lists all tags in creation order
// GET /api/tags
func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.tags.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tags)
}

// DeleteTag removes a tag
// DELETE /api/tags/:id
func (h *TagHandler) DeleteTag(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation(err, "invalid tag id")
	}

	if err := h.tags.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
