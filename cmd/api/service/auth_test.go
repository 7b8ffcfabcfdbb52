package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touchly/directory/cmd/api/models"
	"github.com/touchly/directory/cmd/api/repository"
	"github.com/touchly/directory/common/apperr"
	"github.com/touchly/directory/common/config"
	"github.com/touchly/directory/common/logger"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, repository.ErrAlreadyExists
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func newTestAuthService() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	cfg := config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
	return NewAuthService(store, cfg, logger.New("error", "text")), store
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc, store := newTestAuthService()

	user, err := svc.CreateUser(context.Background(), "anna@example.com", "hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotNil(t, user.EmailVerifiedAt)

	stored := store.byEmail["anna@example.com"]
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "hunter2", *stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("hunter2")))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.CreateUser(context.Background(), "anna@example.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), "anna@example.com", "hunter2")
	require.Error(t, err)
	assert.Equal(t, 400, apperr.CodeOf(err))
}

func TestCreateUser_RequiresCredentials(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.CreateUser(context.Background(), "", "hunter2")
	require.Error(t, err)
	assert.Equal(t, 400, apperr.CodeOf(err))
}

func TestLogin_ReturnsParsableToken(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.CreateUser(context.Background(), "anna@example.com", "hunter2")
	require.NoError(t, err)

	tokenStr, err := svc.Login(context.Background(), "anna@example.com", "hunter2")
	require.NoError(t, err)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.CreateUser(context.Background(), "anna@example.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "anna@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, apperr.CodeOf(err))
	assert.Equal(t, "invalid credentials", apperr.MessageOf(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), "ghost@example.com", "hunter2")
	require.Error(t, err)
	assert.Equal(t, 401, apperr.CodeOf(err))
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	svc, store := newTestAuthService()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashStr := string(hash)

	_, err = store.Create(context.Background(), &models.User{
		Email:        "pending@example.com",
		PasswordHash: &hashStr,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "pending@example.com", "hunter2")
	require.Error(t, err)
	assert.Equal(t, 401, apperr.CodeOf(err))
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.GetUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperr.CodeOf(err))
}
