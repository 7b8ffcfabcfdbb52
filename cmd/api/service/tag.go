package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/touchly/directory/cmd/api/models"
	"github.com/touchly/directory/cmd/api/repository"
	"github.com/touchly/directory/common/apperr"
	"github.com/touchly/directory/common/logger"
)

const (
	tagListCacheKey = "tags:all"
	tagListCacheTTL = 60 * time.Second
)

type tagStore interface {
	Create(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AllExist(ctx context.Context, ids []uuid.UUID) (bool, error)
}

type tagCache interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithExpiry(ctx context.Context, key, value string, expiry time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TagService handles tag operations with a short-lived Redis list cache
type TagService struct {
	repo  tagStore
	cache tagCache
	log   *logger.Logger
}

// NewTagService creates a new tag service. The cache may be nil in tests.
func NewTagService(repo tagStore, cache tagCache, log *logger.Logger) *TagService {
	return &TagService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create creates a new tag. Names are free text and need not be unique.
func (s *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	if name == "" {
		return nil, apperr.Validation(nil, "name is required")
	}

	tag, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, apperr.Internal(err, "failed to create tag")
	}

	s.invalidateCache(ctx)
	s.log.Info("created tag", "tag_id", tag.ID, "name", tag.Name)

	return tag, nil
}

// List returns all tags in creation order, served from cache when warm
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, tagListCacheKey); err == nil {
			var tags []models.Tag
			if err := json.Unmarshal([]byte(cached), &tags); err == nil {
				return tags, nil
			}
		}
	}

	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list tags")
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(tags); err == nil {
			if err := s.cache.SetWithExpiry(ctx, tagListCacheKey, string(encoded), tagListCacheTTL); err != nil {
				s.log.Warn("tag cache write failed", "error", err)
			}
		}
	}

	return tags, nil
}

// Delete removes a tag
func (s *TagService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(err, "tag not found")
		}
		return apperr.Internal(err, "failed to delete tag")
	}

	s.invalidateCache(ctx)
	s.log.Info("deleted tag", "tag_id", id)

	return nil
}

// AllExist reports whether every id references a stored tag
func (s *TagService) AllExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	return s.repo.AllExist(ctx, ids)
}

func (s *TagService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, tagListCacheKey); err != nil {
		s.log.Warn("tag cache invalidation failed", "error", err)
	}
}
