package db

import (
	"context"
	"fmt"
)

// Schema statements are idempotent so the service can bootstrap a fresh
// database on startup without an external migration tool.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT,
		email_verified_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		avatar TEXT,
		activity_name TEXT,
		about TEXT,
		website TEXT,
		country_code TEXT,
		phone_number TEXT,
		phone_calling_code TEXT,
		email TEXT,
		views_amount INT NOT NULL DEFAULT 0,
		saves_amount INT NOT NULL DEFAULT 0,
		is_published BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS contact_tags (
		contact_id UUID NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
		tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		position INT NOT NULL DEFAULT 0,
		PRIMARY KEY (contact_id, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS social_links (
		id UUID PRIMARY KEY,
		contact_id UUID NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		link TEXT NOT NULL,
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id UUID PRIMARY KEY,
		contact_id UUID NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
		external_id TEXT,
		label TEXT NOT NULL,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS saved_contacts (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		contact_id UUID NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, contact_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts (created_at, id)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_tags_tag ON contact_tags (tag_id)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_contact ON addresses (contact_id, created_at DESC)`,
}

// EnsureSchema creates all tables and indexes if they do not exist yet
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	db.log.Info("database schema ensured")
	return nil
}
