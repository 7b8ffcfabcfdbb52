package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/touchly/directory/cmd/api/models"
	"github.com/touchly/directory/cmd/api/repository"
	"github.com/touchly/directory/common/apperr"
	"github.com/touchly/directory/common/logger"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

type contactStore interface {
	Create(ctx context.Context, contact *models.Contact, tagIDs []uuid.UUID, links []models.Link) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}, tagIDs *[]uuid.UUID, links *[]models.Link) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, q repository.SearchQuery) (models.ContactsPage, error)
	Save(ctx context.Context, userID, contactID uuid.UUID) error
	Unsave(ctx context.Context, userID, contactID uuid.UUID) error
	ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]models.ContactSummary, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
}

type addressStore interface {
	Create(ctx context.Context, address *models.Address) (*models.Address, error)
	GetLatestByContact(ctx context.Context, contactID uuid.UUID) (*models.Address, error)
	ExistsForContact(ctx context.Context, contactID uuid.UUID) (bool, error)
}

type tagChecker interface {
	AllExist(ctx context.Context, ids []uuid.UUID) (bool, error)
}

// TagRef references an existing tag by id
type TagRef struct {
	ID uuid.UUID `json:"id"`
}

// UpdateContactRequest is a field-level partial payload: nil fields are left
// unchanged, present list fields replace the stored lists wholesale.
type UpdateContactRequest struct {
	Name             *string        `json:"name"`
	Avatar           *string        `json:"avatar"`
	ActivityName     *string        `json:"activity_name"`
	About            *string        `json:"about"`
	Website          *string        `json:"website"`
	CountryCode      *string        `json:"country_code"`
	PhoneNumber      *string        `json:"phone_number"`
	PhoneCallingCode *string        `json:"phone_calling_code"`
	Email            *string        `json:"email"`
	Tags             *[]TagRef      `json:"tags,omitempty"`
	SocialLinks      *[]models.Link `json:"social_links,omitempty"`
}

// CreateContactRequest shares the update shape; only Name is mandatory
type CreateContactRequest UpdateContactRequest

// CreateAddressRequest attaches one geocoded location to a contact
type CreateAddressRequest struct {
	ExternalID *string       `json:"external_id"`
	Label      string        `json:"label"`
	Name       string        `json:"name"`
	Location   *models.Point `json:"location"`
}

// SearchParams carries raw search filters before normalization.
// Geo pointers distinguish "absent" from zero coordinates.
type SearchParams struct {
	Search   string
	TagID    *uuid.UUID
	Lat      *float64
	Lng      *float64
	Radius   *float64
	Page     int
	PageSize int
}

// ContactService owns the contact lifecycle, tag associations, addresses
// and the search engine on top of them
type ContactService struct {
	contacts  contactStore
	addresses addressStore
	tags      tagChecker
	log       *logger.Logger
}

// NewContactService creates a new contact service
func NewContactService(contacts contactStore, addresses addressStore, tags tagChecker, log *logger.Logger) *ContactService {
	return &ContactService{
		contacts:  contacts,
		addresses: addresses,
		tags:      tags,
		log:       log,
	}
}

// Create stores a new contact owned by userID. Every referenced tag id must
// exist or the whole write is rejected.
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, req CreateContactRequest) (*models.Contact, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, apperr.Validation(nil, "name is required")
	}

	tagIDs, err := s.resolveTagIDs(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	links := make([]models.Link, 0)
	if req.SocialLinks != nil {
		links = *req.SocialLinks
	}

	contact := &models.Contact{
		UserID:           userID,
		Name:             *req.Name,
		Avatar:           req.Avatar,
		ActivityName:     req.ActivityName,
		About:            req.About,
		Website:          req.Website,
		CountryCode:      req.CountryCode,
		PhoneNumber:      req.PhoneNumber,
		PhoneCallingCode: req.PhoneCallingCode,
		Email:            req.Email,
	}

	if err := s.contacts.Create(ctx, contact, tagIDs, links); err != nil {
		return nil, apperr.Internal(err, "failed to create contact")
	}

	s.log.Info("created contact", "contact_id", contact.ID, "user_id", userID)

	return s.Get(ctx, contact.ID)
}

// Get returns the full contact entity including its address when attached
func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(err, "contact not found")
		}
		return nil, apperr.Internal(err, "failed to get contact")
	}

	address, err := s.addresses.GetLatestByContact(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err, "failed to get contact address")
	}
	contact.Address = address

	return contact, nil
}

// Update applies a partial merge to a contact owned by userID. Tag and
// social-link lists, when present, replace the stored lists entirely.
func (s *ContactService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateContactRequest) (*models.Contact, error) {
	if err := s.requireOwner(ctx, userID, id); err != nil {
		return nil, err
	}

	var tagIDs *[]uuid.UUID
	if req.Tags != nil {
		ids, err := s.resolveTagIDs(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
		tagIDs = &ids
	}

	if err := s.contacts.Update(ctx, id, collectUpdates(req), tagIDs, req.SocialLinks); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(err, "contact not found")
		}
		return nil, apperr.Internal(err, "failed to update contact")
	}

	return s.Get(ctx, id)
}

// Delete removes a contact owned by userID
func (s *ContactService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.requireOwner(ctx, userID, id); err != nil {
		return err
	}

	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(err, "contact not found")
		}
		return apperr.Internal(err, "failed to delete contact")
	}

	s.log.Info("deleted contact", "contact_id", id, "user_id", userID)

	return nil
}

// Search runs the combined text/geo/tag filter and paginates the result.
// The geospatial triple must be supplied whole or not at all.
func (s *ContactService) Search(ctx context.Context, p SearchParams) (models.ContactsPage, error) {
	query := repository.SearchQuery{
		Search:   p.Search,
		TagID:    p.TagID,
		Page:     p.Page,
		PageSize: p.PageSize,
	}

	if query.Page < 1 {
		query.Page = defaultPage
	}
	if query.PageSize < 1 {
		query.PageSize = defaultPageSize
	}

	geoSupplied := 0
	for _, v := range []*float64{p.Lat, p.Lng, p.Radius} {
		if v != nil {
			geoSupplied++
		}
	}

	switch geoSupplied {
	case 0:
	case 3:
		if *p.Radius < 1 {
			return models.ContactsPage{}, apperr.Validation(nil, "radius must be positive")
		}
		query.Geo = &repository.GeoFilter{
			Lat:          *p.Lat,
			Lng:          *p.Lng,
			RadiusMeters: *p.Radius,
		}
	default:
		return models.ContactsPage{}, apperr.Validation(nil, "lat, lng and radius must be supplied together")
	}

	page, err := s.contacts.Search(ctx, query)
	if err != nil {
		return models.ContactsPage{}, apperr.Internal(err, "failed to search contacts")
	}

	return page, nil
}

// AttachAddress binds one geocoded location to a contact owned by userID.
// A contact carries at most one address; a second attach is rejected.
func (s *ContactService) AttachAddress(ctx context.Context, userID, contactID uuid.UUID, req CreateAddressRequest) (*models.Address, error) {
	if req.Label == "" || req.Name == "" || req.Location == nil {
		return nil, apperr.Validation(nil, "label, name and location are required")
	}

	if err := s.requireOwner(ctx, userID, contactID); err != nil {
		return nil, err
	}

	exists, err := s.addresses.ExistsForContact(ctx, contactID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to check contact address")
	}
	if exists {
		return nil, apperr.Validation(nil, "contact already has an address")
	}

	address, err := s.addresses.Create(ctx, &models.Address{
		ContactID:  contactID,
		ExternalID: req.ExternalID,
		Label:      req.Label,
		Name:       req.Name,
		Location:   *req.Location,
	})
	if err != nil {
		return nil, apperr.Internal(err, "failed to create contact address")
	}

	s.log.Info("attached address", "contact_id", contactID, "address_id", address.ID)

	return address, nil
}

// Save bookmarks a contact for the caller and bumps its saves counter
func (s *ContactService) Save(ctx context.Context, userID, contactID uuid.UUID) error {
	err := s.contacts.Save(ctx, userID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return apperr.Validation(err, "contact already saved")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(err, "contact not found")
		}
		return apperr.Internal(err, "failed to save contact")
	}

	return nil
}

// Unsave removes a bookmark
func (s *ContactService) Unsave(ctx context.Context, userID, contactID uuid.UUID) error {
	err := s.contacts.Unsave(ctx, userID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(err, "contact not found")
		}
		return apperr.Internal(err, "failed to unsave contact")
	}

	return nil
}

// ListSaved returns the caller's bookmarked contacts
func (s *ContactService) ListSaved(ctx context.Context, userID uuid.UUID) ([]models.ContactSummary, error) {
	contacts, err := s.contacts.ListSavedByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list saved contacts")
	}

	return contacts, nil
}

// SetVisibility flips the publication flag of a contact owned by userID
func (s *ContactService) SetVisibility(ctx context.Context, userID, contactID uuid.UUID, published bool) error {
	if err := s.requireOwner(ctx, userID, contactID); err != nil {
		return err
	}

	if err := s.contacts.SetPublished(ctx, contactID, published); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(err, "contact not found")
		}
		return apperr.Internal(err, "failed to update visibility")
	}

	return nil
}

// requireOwner is the single ownership gate applied before every mutating
// contact operation
func (s *ContactService) requireOwner(ctx context.Context, userID, contactID uuid.UUID) error {
	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(err, "contact not found")
		}
		return apperr.Internal(err, "failed to get contact")
	}

	if contact.UserID != userID {
		return apperr.Forbidden(nil, "contact does not belong to user")
	}

	return nil
}

// resolveTagIDs flattens tag references and verifies every id exists.
// Repeated ids collapse to one so the join-table insert stays conflict-free.
func (s *ContactService) resolveTagIDs(ctx context.Context, refs *[]TagRef) ([]uuid.UUID, error) {
	if refs == nil {
		return nil, nil
	}

	seen := make(map[uuid.UUID]bool, len(*refs))
	ids := make([]uuid.UUID, 0, len(*refs))
	for _, ref := range *refs {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		ids = append(ids, ref.ID)
	}

	ok, err := s.tags.AllExist(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err, "failed to validate tags")
	}
	if !ok {
		return nil, apperr.Validation(nil, "unknown tag id")
	}

	return ids, nil
}

// collectUpdates maps present scalar fields onto their columns
func collectUpdates(req UpdateContactRequest) map[string]interface{} {
	updates := map[string]interface{}{}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.ActivityName != nil {
		updates["activity_name"] = *req.ActivityName
	}
	if req.About != nil {
		updates["about"] = *req.About
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.CountryCode != nil {
		updates["country_code"] = *req.CountryCode
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.PhoneCallingCode != nil {
		updates["phone_calling_code"] = *req.PhoneCallingCode
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}

	return updates
}
