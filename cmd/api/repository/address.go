package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/touchly/directory/cmd/api/models"
	"github.com/touchly/directory/common/db"
)

// AddressRepository handles database operations for contact addresses
type AddressRepository struct {
	db *db.DB
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *db.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// Create inserts a new address for a contact
func (r *AddressRepository) Create(ctx context.Context, address *models.Address) (*models.Address, error) {
	query := `
		INSERT INTO addresses (id, contact_id, external_id, label, name, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	address.ID = uuid.New()
	err := r.db.QueryRow(ctx, query,
		address.ID,
		address.ContactID,
		address.ExternalID,
		address.Label,
		address.Name,
		address.Location.Lat,
		address.Location.Lng,
	).Scan(&address.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	return address, nil
}

// GetLatestByContact retrieves the most recently attached address for a contact.
// The storage shape permits several rows; the newest one is authoritative.
func (r *AddressRepository) GetLatestByContact(ctx context.Context, contactID uuid.UUID) (*models.Address, error) {
	query := `
		SELECT id, contact_id, external_id, label, name, lat, lng, created_at
		FROM addresses
		WHERE contact_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	address := &models.Address{}
	err := r.db.QueryRow(ctx, query, contactID).Scan(
		&address.ID,
		&address.ContactID,
		&address.ExternalID,
		&address.Label,
		&address.Name,
		&address.Location.Lat,
		&address.Location.Lng,
		&address.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	return address, nil
}

// ExistsForContact reports whether the contact already has an address
func (r *AddressRepository) ExistsForContact(ctx context.Context, contactID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM addresses WHERE contact_id = $1)`
	if err := r.db.QueryRow(ctx, query, contactID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check address existence: %w", err)
	}

	return exists, nil
}
