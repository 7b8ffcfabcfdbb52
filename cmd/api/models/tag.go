package models

import (
	"github.com/google/uuid"
)

// Tag is a short label attachable to many contacts.
// Tags are immutable once created; names are not unique.
// Maps to: tags table
type Tag struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
