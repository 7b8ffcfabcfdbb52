package models

import (
	"time"

	"github.com/google/uuid"
)

// Point is a WGS84 coordinate pair in degrees
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is one geocoded location bound to a contact.
// Maps to: addresses table
type Address struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ExternalID *string   `db:"external_id" json:"external_id"`
	ContactID  uuid.UUID `db:"contact_id" json:"contact_id"`
	Label      string    `db:"label" json:"label"`
	Name       string    `db:"name" json:"name"`
	Location   Point     `db:"-" json:"location"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
