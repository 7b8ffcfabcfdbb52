package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/touchly/directory/cmd/api/models"
	"github.com/touchly/directory/common/db"
)

// TagRepository handles database operations for tags
type TagRepository struct {
	db *db.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *db.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag. Duplicate names are allowed and get distinct ids.
func (r *TagRepository) Create(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{
		ID:   uuid.New(),
		Name: name,
	}

	query := `INSERT INTO tags (id, name) VALUES ($1, $2)`

	if _, err := r.db.Exec(ctx, query, tag.ID, tag.Name); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

// List retrieves all tags in creation order
func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	query := `SELECT id, name FROM tags ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
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

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// Delete removes a tag
func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// AllExist reports whether every id references a stored tag
func (r *TagRepository) AllExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	distinct := make([]uuid.UUID, 0, len(unique))
	for id := range unique {
		distinct = append(distinct, id)
	}

	var count int
	query := `SELECT COUNT(*) FROM tags WHERE id = ANY($1)`
	if err := r.db.QueryRow(ctx, query, distinct).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check tag existence: %w", err)
	}

	return count == len(distinct), nil
}
