package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touchly/directory/common/apperr"
	"github.com/touchly/directory/common/logger"
)

type fakePresigner struct {
	lastKey    string
	lastExpiry time.Duration
}

func (f *fakePresigner) PresignPut(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	f.lastKey = objectKey
	f.lastExpiry = expiry
	return "https://storage.example.com/" + objectKey + "?sig=abc", nil
}

func TestGetUploadURL_ScopesKeyToUser(t *testing.T) {
	presigner := &fakePresigner{}
	svc := NewUploadService(presigner, 15*time.Minute, logger.New("error", "text"))
	userID := uuid.New()

	url, err := svc.GetUploadURL(context.Background(), userID, "avatar.png")
	require.NoError(t, err)

	assert.Equal(t, userID.String()+"/avatar.png", presigner.lastKey)
	assert.Equal(t, 15*time.Minute, presigner.lastExpiry)
	assert.Contains(t, url.URL, presigner.lastKey)
}

func TestGetUploadURL_RejectsEmptyName(t *testing.T) {
	svc := NewUploadService(&fakePresigner{}, 15*time.Minute, logger.New("error", "text"))

	_, err := svc.GetUploadURL(context.Background(), uuid.New(), "")
	require.Error(t, err)
	assert.Equal(t, 400, apperr.CodeOf(err))
}

func TestGetUploadURL_RejectsTraversal(t *testing.T) {
	svc := NewUploadService(&fakePresigner{}, 15*time.Minute, logger.New("error", "text"))

	for _, name := range []string{"../secret", "a/../../b", "/etc/passwd"} {
		_, err := svc.GetUploadURL(context.Background(), uuid.New(), name)
		require.Error(t, err, name)
		assert.Equal(t, 400, apperr.CodeOf(err))
	}
}
