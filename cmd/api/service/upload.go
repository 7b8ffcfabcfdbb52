package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/touchly/directory/common/apperr"
	"github.com/touchly/directory/common/logger"
)

type presigner interface {
	PresignPut(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// UploadURL is the time-boxed write capability handed to the client
type UploadURL struct {
	URL string `json:"url"`
}

// UploadService issues presigned write URLs scoped to the caller.
// The byte transfer itself happens between the client and the object store;
// no state here tracks whether it ever completes.
type UploadService struct {
	store  presigner
	expiry time.Duration
	log    *logger.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(store presigner, expiry time.Duration, log *logger.Logger) *UploadService {
	return &UploadService{
		store:  store,
		expiry: expiry,
		log:    log,
	}
}

// GetUploadURL issues a presigned PUT URL for a user-scoped object key
func (s *UploadService) GetUploadURL(ctx context.Context, userID uuid.UUID, fileName string) (*UploadURL, error) {
	if fileName == "" {
		return nil, apperr.Validation(nil, "file_name is required")
	}

	if strings.Contains(fileName, "..") || strings.HasPrefix(fileName, "/") {
		return nil, apperr.Validation(nil, "invalid file_name")
	}

	objectKey := fmt.Sprintf("%s/%s", userID, fileName)

	url, err := s.store.PresignPut(ctx, objectKey, s.expiry)
	if err != nil {
		return nil, apperr.Internal(err, "failed to get presigned URL")
	}

	s.log.Debug("issued upload URL", "key", objectKey, "expiry", s.expiry)

	return &UploadURL{URL: url}, nil
}
