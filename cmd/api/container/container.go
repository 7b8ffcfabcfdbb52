package container

import (
	"context"
	"fmt"

	"github.com/touchly/directory/cmd/api/repository"
	"github.com/touchly/directory/cmd/api/service"
	"github.com/touchly/directory/common/bootstrap"
	"github.com/touchly/directory/common/objectstore"
	"github.com/touchly/directory/common/ratelimit"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	Components *bootstrap.Components

	// Repositories
	UserRepo    *repository.UserRepository
	TagRepo     *repository.TagRepository
	ContactRepo *repository.ContactRepository
	AddressRepo *repository.AddressRepository

	// Services
	AuthService    *service.AuthService
	TagService     *service.TagService
	ContactService *service.ContactService
	UploadService  *service.UploadService

	RateLimiter *ratelimit.RateLimiter
}

// NewContainer initializes all services and repositories once
func NewContainer(ctx context.Context, components *bootstrap.Components) (*Container, error) {
	cfg := components.Config

	// Initialize repositories
	userRepo := repository.NewUserRepository(components.DB)
	tagRepo := repository.NewTagRepository(components.DB)
	contactRepo := repository.NewContactRepository(components.DB)
	addressRepo := repository.NewAddressRepository(components.DB)

	// Object store client for presigned uploads
	store, err := objectstore.New(ctx, cfg.Uploads)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	// Initialize services (bottom-up: dependencies first)
	authService := service.NewAuthService(userRepo, cfg.Auth, components.Logger)
	tagService := service.NewTagService(tagRepo, components.Redis, components.Logger)
	contactService := service.NewContactService(contactRepo, addressRepo, tagService, components.Logger)
	uploadService := service.NewUploadService(store, cfg.Uploads.URLExpiry, components.Logger)

	limiter := ratelimit.NewRateLimiter(components.RedisRaw, components.Logger)

	return &Container{
		Components:     components,
		UserRepo:       userRepo,
		TagRepo:        tagRepo,
		ContactRepo:    contactRepo,
		AddressRepo:    addressRepo,
		AuthService:    authService,
		TagService:     tagService,
		ContactService: contactService,
		UploadService:  uploadService,
		RateLimiter:    limiter,
	}, nil
}
