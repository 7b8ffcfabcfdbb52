package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/touchly/directory/cmd/api/models"
	"github.com/touchly/directory/common/db"
)

// ContactRepository handles database operations for contacts, their tag
// associations and social links
type ContactRepository struct {
	db *db.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *db.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a contact with its tag references and social links in one
// transaction. Counters and the publication flag start at their defaults.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact, tagIDs []uuid.UUID, links []models.Link) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create contact: %w", err)
	}
	defer tx.Rollback(ctx)

	contact.ID = uuid.New()

	query := `
		INSERT INTO contacts
			(id, user_id, name, avatar, activity_name, about, website, country_code, phone_number, phone_calling_code, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING views_amount, saves_amount, is_published, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		contact.ID,
		contact.UserID,
		contact.Name,
		contact.Avatar,
		contact.ActivityName,
		contact.About,
		contact.Website,
		contact.CountryCode,
		contact.PhoneNumber,
		contact.PhoneCallingCode,
		contact.Email,
	).Scan(
		&contact.ViewsAmount,
		&contact.SavesAmount,
		&contact.IsPublished,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	if err := insertContactTags(ctx, tx, contact.ID, tagIDs); err != nil {
		return err
	}

	if err := insertSocialLinks(ctx, tx, contact.ID, links); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create contact: %w", err)
	}

	return nil
}

// GetByID retrieves a contact with its ordered tags and social links.
// The address is loaded separately by the address repository.
func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	query := `
		SELECT id, user_id, name, avatar, activity_name, about, website, country_code,
		       phone_number, phone_calling_code, email, views_amount, saves_amount,
		       is_published, created_at, updated_at
		FROM contacts
		WHERE id = $1
	`

	contact := &models.Contact{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&contact.ID,
		&contact.UserID,
		&contact.Name,
		&contact.Avatar,
		&contact.ActivityName,
		&contact.About,
		&contact.Website,
		&contact.CountryCode,
		&contact.PhoneNumber,
		&contact.PhoneCallingCode,
		&contact.Email,
		&contact.ViewsAmount,
		&contact.SavesAmount,
		&contact.IsPublished,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	if contact.Tags, err = r.tagsForContact(ctx, id); err != nil {
		return nil, err
	}

	if contact.SocialLinks, err = r.linksForContact(ctx, id); err != nil {
		return nil, err
	}

	return contact, nil
}

// Update applies a field-level partial merge in one transaction: the given
// columns replace stored values, nil tag/link lists leave the association
// tables untouched, non-nil lists are swapped wholesale.
func (r *ContactRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}, tagIDs *[]uuid.UUID, links *[]models.Link) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update contact: %w", err)
	}
	defer tx.Rollback(ctx)

	set := "updated_at = now()"
	args := []interface{}{id}
	idx := 2

	// Deterministic column order keeps the statement stable
	columns := make([]string, 0, len(updates))
	for col := range updates {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	for _, col := range columns {
		set += fmt.Sprintf(", %s = $%d", col, idx)
		args = append(args, updates[col])
		idx++
	}

	result, err := tx.Exec(ctx, fmt.Sprintf("UPDATE contacts SET %s WHERE id = $1", set), args...)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if tagIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM contact_tags WHERE contact_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear contact tags: %w", err)
		}
		if err := insertContactTags(ctx, tx, id, *tagIDs); err != nil {
			return err
		}
	}

	if links != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM social_links WHERE contact_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear social links: %w", err)
		}
		if err := insertSocialLinks(ctx, tx, id, *links); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update contact: %w", err)
	}

	return nil
}

// Delete removes a contact; association rows cascade
func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Search returns one page of matching contact summaries plus the total
// match count before pagination
func (r *ContactRepository) Search(ctx context.Context, q SearchQuery) (models.ContactsPage, error) {
	page := models.ContactsPage{
		Page:     q.Page,
		PageSize: q.PageSize,
		Contacts: make([]models.ContactSummary, 0),
	}

	countSQL, selectSQL, args := buildSearchSQL(q)

	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("failed to count contacts: %w", err)
	}

	rows, err := r.db.Query(ctx, selectSQL, append(args, q.PageSize, q.Offset())...)
	if err != nil {
		return page, fmt.Errorf("failed to search contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.ContactSummary
		err := rows.Scan(
			&c.ID, &c.Name, &c.Avatar, &c.ActivityName, &c.About,
			&c.ViewsAmount, &c.SavesAmount, &c.UserID, &c.IsPublished,
		)
		if err != nil {
			return page, fmt.Errorf("failed to scan contact summary: %w", err)
		}
		page.Contacts = append(page.Contacts, c)
	}

	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("error iterating contacts: %w", err)
	}

	return page, nil
}

// Save records a bookmark and bumps the contact's saves counter
func (r *ContactRepository) Save(ctx context.Context, userID, contactID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save contact: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`INSERT INTO saved_contacts (user_id, contact_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, contactID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to save contact: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrAlreadyExists
	}

	if _, err := tx.Exec(ctx,
		`UPDATE contacts SET saves_amount = saves_amount + 1 WHERE id = $1`, contactID); err != nil {
		return fmt.Errorf("failed to bump saves counter: %w", err)
	}

	return tx.Commit(ctx)
}

// Unsave removes a bookmark and decrements the saves counter
func (r *ContactRepository) Unsave(ctx context.Context, userID, contactID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unsave contact: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`DELETE FROM saved_contacts WHERE user_id = $1 AND contact_id = $2`,
		userID, contactID)
	if err != nil {
		return fmt.Errorf("failed to unsave contact: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE contacts SET saves_amount = GREATEST(saves_amount - 1, 0) WHERE id = $1`, contactID); err != nil {
		return fmt.Errorf("failed to drop saves counter: %w", err)
	}

	return tx.Commit(ctx)
}

// ListSavedByUser returns summaries for the user's bookmarked contacts in
// save order
func (r *ContactRepository) ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]models.ContactSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts c
		JOIN saved_contacts sc ON sc.contact_id = c.id
		WHERE sc.user_id = $1
		ORDER BY sc.created_at ASC
	`, summaryColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]models.ContactSummary, 0)
	for rows.Next() {
		var c models.ContactSummary
		err := rows.Scan(
			&c.ID, &c.Name, &c.Avatar, &c.ActivityName, &c.About,
			&c.ViewsAmount, &c.SavesAmount, &c.UserID, &c.IsPublished,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact summary: %w", err)
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved contacts: %w", err)
	}

	return contacts, nil
}

// SetPublished flips the publication flag
func (r *ContactRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE contacts SET is_published = $2, updated_at = now() WHERE id = $1`,
		id, published)
	if err != nil {
		return fmt.Errorf("failed to update visibility: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *ContactRepository) tagsForContact(ctx context.Context, contactID uuid.UUID) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN contact_tags ct ON ct.tag_id = t.id
		WHERE ct.contact_id = $1
		ORDER BY ct.position ASC
	`

	rows, err := r.db.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact tags: %w", err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (r *ContactRepository) linksForContact(ctx context.Context, contactID uuid.UUID) ([]models.Link, error) {
	query := `
		SELECT id, type, link
		FROM social_links
		WHERE contact_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load social links: %w", err)
	}
	defer rows.Close()

	links := make([]models.Link, 0)
	for rows.Next() {
		var link models.Link
		if err := rows.Scan(&link.ID, &link.Type, &link.Link); err != nil {
			return nil, fmt.Errorf("failed to scan social link: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

func insertContactTags(ctx context.Context, tx pgx.Tx, contactID uuid.UUID, tagIDs []uuid.UUID) error {
	for position, tagID := range tagIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO contact_tags (contact_id, tag_id, position) VALUES ($1, $2, $3)`,
			contactID, tagID, position)
		if err != nil {
			return fmt.Errorf("failed to attach tag %s: %w", tagID, err)
		}
	}
	return nil
}

func insertSocialLinks(ctx context.Context, tx pgx.Tx, contactID uuid.UUID, links []models.Link) error {
	for position, link := range links {
		_, err := tx.Exec(ctx,
			`INSERT INTO social_links (id, contact_id, type, link, position) VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), contactID, link.Type, link.Link, position)
		if err != nil {
			return fmt.Errorf("failed to insert social link: %w", err)
		}
	}
	return nil
}

// isForeignKeyViolation reports whether err is a Postgres FK constraint violation
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
