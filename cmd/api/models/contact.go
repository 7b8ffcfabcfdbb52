package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a directory entry owned by a user.
// Counters and the publication flag are repository-owned and never
// client-settable through create or update.
// Maps to: contacts table (tags and social links live in join tables)
type Contact struct {
	ID               uuid.UUID `db:"id" json:"id"`
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
	Name             string    `db:"name" json:"name"`
	Avatar           *string   `db:"avatar" json:"avatar"`
	ActivityName     *string   `db:"activity_name" json:"activity_name"`
	About            *string   `db:"about" json:"about"`
	Website          *string   `db:"website" json:"website"`
	CountryCode      *string   `db:"country_code" json:"country_code"`
	PhoneNumber      *string   `db:"phone_number" json:"phone_number"`
	PhoneCallingCode *string   `db:"phone_calling_code" json:"phone_calling_code"`
	Email            *string   `db:"email" json:"email"`
	ViewsAmount      int       `db:"views_amount" json:"views_amount"`
	SavesAmount      int       `db:"saves_amount" json:"saves_amount"`
	IsPublished      bool      `db:"is_published" json:"is_published"`
	Tags             []Tag     `db:"-" json:"tags"`
	SocialLinks      []Link    `db:"-" json:"social_links"`
	Address          *Address  `db:"-" json:"address,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Link is one social profile reference on a contact.
// The whole list is replaced atomically on update, order preserved.
// Maps to: social_links table
type Link struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Type string    `db:"type" json:"type"`
	Link string    `db:"link" json:"link"`
}

// ContactSummary is the reduced projection returned by search listings.
// Detail-only fields (website, phones, tags, links, address) are exposed
// through get-by-id only.
type ContactSummary struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Avatar       *string   `db:"avatar" json:"avatar"`
	ActivityName *string   `db:"activity_name" json:"activity_name"`
	About        *string   `db:"about" json:"about"`
	ViewsAmount  int       `db:"views_amount" json:"views_amount"`
	SavesAmount  int       `db:"saves_amount" json:"saves_amount"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	IsPublished  bool      `db:"is_published" json:"is_published"`
}

// ContactsPage is one page of search results.
// TotalCount is the match count before pagination.
type ContactsPage struct {
	Contacts   []ContactSummary `json:"contacts"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}
