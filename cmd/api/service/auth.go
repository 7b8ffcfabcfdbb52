package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/touchly/directory/cmd/api/models"
	"github.com/touchly/directory/cmd/api/repository"
	"github.com/touchly/directory/common/apperr"
	"github.com/touchly/directory/common/config"
	"github.com/touchly/directory/common/logger"
	"golang.org/x/crypto/bcrypt"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Claims is the JWT payload carried by bearer tokens
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// AuthService issues tokens and manages admin-provisioned accounts
type AuthService struct {
	users userStore
	cfg   config.AuthConfig
	log   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users userStore, cfg config.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

// GenerateToken signs an HS256 bearer token for the given user
func GenerateToken(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID: userID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// CreateUser provisions an account with a verified email and hashed password
func (s *AuthService) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation(nil, "email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err, "failed to hash password")
	}

	hashStr := string(hash)
	now := time.Now()

	user, err := s.users.Create(ctx, &models.User{
		Email:           email,
		PasswordHash:    &hashStr,
		EmailVerifiedAt: &now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, apperr.Validation(err, "user already exists")
		}
		return nil, apperr.Internal(err, "failed to create user")
	}

	s.log.Info("created user", "user_id", user.ID)

	return user, nil
}

// Login verifies credentials and returns a signed bearer token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperr.Validation(nil, "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.Unauthorized(err, "invalid credentials")
		}
		return "", apperr.Internal(err, "failed to get user")
	}

	if user.EmailVerifiedAt == nil || user.PasswordHash == nil {
		return "", apperr.Unauthorized(nil, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Unauthorized(err, "invalid credentials")
	}

	token, err := GenerateToken(s.cfg.JWTSecret, user.ID, s.cfg.TokenTTL)
	if err != nil {
		return "", apperr.Internal(err, "failed to sign token")
	}

	return token, nil
}

// GetUser retrieves a user by id
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(err, "user not found")
		}
		return nil, apperr.Internal(err, "failed to get user")
	}

	return user, nil
}
