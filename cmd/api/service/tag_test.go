package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touchly/directory/cmd/api/models"
	"github.com/touchly/directory/cmd/api/repository"
	"github.com/touchly/directory/common/apperr"
	"github.com/touchly/directory/common/logger"
	rediscommon "github.com/touchly/directory/common/redis"
)

type fakeTagStore struct {
	tags      []models.Tag
	listCalls int
}

func (f *fakeTagStore) Create(ctx context.Context, name string) (*models.Tag, error) {
	tag := models.Tag{ID: uuid.New(), Name: name}
	f.tags = append(f.tags, tag)
	return &tag, nil
}

func (f *fakeTagStore) List(ctx context.Context) ([]models.Tag, error) {
	f.listCalls++
	return f.tags, nil
}

func (f *fakeTagStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, tag := range f.tags {
		if tag.ID == id {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTagStore) AllExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	for _, id := range ids {
		found := false
		for _, tag := range f.tags {
			if tag.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

type fakeCache struct {
	values  map[string]string
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", rediscommon.ErrNotFound
	}
	return v, nil
}

func (f *fakeCache) SetWithExpiry(ctx context.Context, key, value string, expiry time.Duration) error {
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	f.deletes++
	return nil
}

func TestTagCreate_RequiresName(t *testing.T) {
	svc := NewTagService(&fakeTagStore{}, nil, logger.New("error", "text"))

	_, err := svc.Create(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 400, apperr.CodeOf(err))
}

func TestTagList_PopulatesAndServesCache(t *testing.T) {
	store := &fakeTagStore{}
	cache := newFakeCache()
	svc := NewTagService(store, cache, logger.New("error", "text"))

	_, err := svc.Create(context.Background(), "plumber")
	require.NoError(t, err)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, store.listCalls)

	// Second read is served from the cache
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.listCalls)

	var cached []models.Tag
	require.NoError(t, json.Unmarshal([]byte(cache.values["tags:all"]), &cached))
	assert.Equal(t, "plumber", cached[0].Name)
}

func TestTagWrites_InvalidateCache(t *testing.T) {
	store := &fakeTagStore{}
	cache := newFakeCache()
	svc := NewTagService(store, cache, logger.New("error", "text"))

	tag, err := svc.Create(context.Background(), "plumber")
	require.NoError(t, err)

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cache.values, "tags:all")

	require.NoError(t, svc.Delete(context.Background(), tag.ID))
	assert.NotContains(t, cache.values, "tags:all")
}

func TestTagDelete_NotFound(t *testing.T) {
	svc := NewTagService(&fakeTagStore{}, nil, logger.New("error", "text"))

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperr.CodeOf(err))
}

func TestTagAllExist(t *testing.T) {
	store := &fakeTagStore{}
	svc := NewTagService(store, nil, logger.New("error", "text"))

	tag, err := svc.Create(context.Background(), "plumber")
	require.NoError(t, err)

	ok, err := svc.AllExist(context.Background(), []uuid.UUID{tag.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.AllExist(context.Background(), []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	assert.False(t, ok)
}
