package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/cmd/api/middleware"
	"github.com/touchly/directory/cmd/api/service"
	"github.com/touchly/directory/common/apperr"
)

// UploadHandler handles presigned upload URL requests
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

type uploadURLRequest struct {
	FileName string `json:"file_name"`
}

// GetUploadURL issues a presigned PUT URL scoped to the caller.
// The file name travels in the query string; a JSON body is accepted
// as a fallback.
// POST /api/uploads/get-url?file_name=
func (h *UploadHandler) GetUploadURL(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	fileName := c.QueryParam("file_name")
	if fileName == "" {
		var req uploadURLRequest
		if err := c.Bind(&req); err != nil {
			return apperr.Validation(err, "invalid request body")
		}
		fileName = req.FileName
	}

	url, err := h.uploads.GetUploadURL(c.Request().Context(), userID, fileName)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, url)
}
