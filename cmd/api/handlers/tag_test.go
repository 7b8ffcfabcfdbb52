package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touchly/directory/cmd/api/models"
	"github.com/touchly/directory/cmd/api/repository"
	"github.com/touchly/directory/cmd/api/service"
	"github.com/touchly/directory/common/apperr"
	"github.com/touchly/directory/common/logger"
)

type memTagStore struct {
	tags []models.Tag
}

func (m *memTagStore) Create(ctx context.Context, name string) (*models.Tag, error) {
	tag := models.Tag{ID: uuid.New(), Name: name}
	m.tags = append(m.tags, tag)
	return &tag, nil
}

func (m *memTagStore) List(ctx context.Context) ([]models.Tag, error) {
	return m.tags, nil
}

func (m *memTagStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, tag := range m.tags {
		if tag.ID == id {
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memTagStore) AllExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	return true, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if !c.Response().Committed {
			c.JSON(apperr.CodeOf(err), map[string]string{"error": apperr.MessageOf(err)})
		}
	}
	return e
}

func newTagHandlerForTest() (*TagHandler, *memTagStore) {
	store := &memTagStore{}
	svc := service.NewTagService(store, nil, logger.New("error", "text"))
	return NewTagHandler(svc), store
}

func TestCreateTag_Created(t *testing.T) {
	e := newTestEcho()
	h, store := newTagHandlerForTest()
	e.POST("/api/tags", h.CreateTag)

	req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"name":"plumber"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"plumber"`)
	require.Len(t, store.tags, 1)
}

func TestCreateTag_EmptyName(t *testing.T) {
	e := newTestEcho()
	h, _ := newTagHandlerForTest()
	e.POST("/api/tags", h.CreateTag)

	req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestListTags_ReturnsAll(t *testing.T) {
	e := newTestEcho()
	h, store := newTagHandlerForTest()
	e.GET("/api/tags", h.ListTags)

	store.Create(context.Background(), "plumber")
	store.Create(context.Background(), "baker")

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "plumber")
	assert.Contains(t, rec.Body.String(), "baker")
}

func TestDeleteTag_Statuses(t *testing.T) {
	e := newTestEcho()
	h, store := newTagHandlerForTest()
	e.DELETE("/api/tags/:id", h.DeleteTag)

	tag, err := store.Create(context.Background(), "plumber")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/tags/"+tag.ID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/tags/"+uuid.NewString(), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/tags/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
