package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/touchly/directory/cmd/api/service"
	"github.com/touchly/directory/common/logger"
)

type memPresigner struct {
	lastKey string
}

func (m *memPresigner) PresignPut(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	m.lastKey = objectKey
	return "https://storage.example.com/" + objectKey + "?sig=abc", nil
}

func newUploadHandlerForTest() (*UploadHandler, *memPresigner) {
	presigner := &memPresigner{}
	svc := service.NewUploadService(presigner, 15*time.Minute, logger.New("error", "text"))
	return NewUploadHandler(svc), presigner
}

func TestGetUploadURL_QueryParam(t *testing.T) {
	e := newTestEcho()
	h, presigner := newUploadHandlerForTest()
	userID := uuid.New()
	e.POST("/api/uploads/get-url", h.GetUploadURL, asUser(userID))

	// No body at all, file name in the query string
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/get-url?file_name=avatar.png", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String()+"/avatar.png", presigner.lastKey)
	assert.Contains(t, rec.Body.String(), presigner.lastKey)
}

func TestGetUploadURL_BodyFallback(t *testing.T) {
	e := newTestEcho()
	h, presigner := newUploadHandlerForTest()
	userID := uuid.New()
	e.POST("/api/uploads/get-url", h.GetUploadURL, asUser(userID))

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/get-url", strings.NewReader(`{"file_name":"avatar.png"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String()+"/avatar.png", presigner.lastKey)
}

func TestGetUploadURL_MissingName(t *testing.T) {
	e := newTestEcho()
	h, _ := newUploadHandlerForTest()
	e.POST("/api/uploads/get-url", h.GetUploadURL, asUser(uuid.New()))

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/get-url", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
