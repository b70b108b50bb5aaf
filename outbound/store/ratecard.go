package store

import (
	"context"

	"design-folio/model"
)

const listRateCategoriesQuery = `
SELECT id, label, heading, description, tags, plans, deliverables
FROM rate_categories
ORDER BY sort_order, id
`

func (s *Store) ListRateCategories(ctx context.Context) ([]model.RateCategory, error) {
	rows, err := s.db.Query(ctx, listRateCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RateCategory
	for rows.Next() {
		var cat model.RateCategory
		err = rows.Scan(&cat.ID, &cat.Label, &cat.Heading, &cat.Description, &cat.Tags, &cat.Plans, &cat.Deliverables)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}

	return out, rows.Err()
}

const getRateCategoryQuery = `
SELECT id, label, heading, description, tags, plans, deliverables
FROM rate_categories
WHERE id = $1
`

func (s *Store) GetRateCategory(ctx context.Context, id string) (model.RateCategory, error) {
	var cat model.RateCategory
	err := s.db.QueryRow(ctx, getRateCategoryQuery, id).
		Scan(&cat.ID, &cat.Label, &cat.Heading, &cat.Description, &cat.Tags, &cat.Plans, &cat.Deliverables)
	return cat, err
}

const rateCategoryExistsQuery = `
SELECT EXISTS (SELECT 1 FROM rate_categories WHERE id = $1)
`

// RateCategoryExists expects an already-canonicalized (lowercase) id, which
// makes the uniqueness check case-insensitive against stored ids.
func (s *Store) RateCategoryExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, rateCategoryExistsQuery, id).Scan(&exists)
	return exists, err
}

const insertRateCategoryQuery = `
INSERT INTO rate_categories (id, label, heading, description, tags, plans, deliverables)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (s *Store) InsertRateCategory(ctx context.Context, cat model.RateCategory) error {
	_, err := s.db.Exec(ctx, insertRateCategoryQuery,
		cat.ID, cat.Label, cat.Heading, cat.Description, cat.Tags, cat.Plans, cat.Deliverables)
	return err
}

const updateRateCategoryQuery = `
UPDATE rate_categories
SET id = $2, label = $3, heading = $4, description = $5, tags = $6, plans = $7, deliverables = $8, updated_at = now()
WHERE id = $1
`

// UpdateRateCategory replaces the whole document addressed by its original
// identity. Returns the number of rows touched so callers can report 404.
func (s *Store) UpdateRateCategory(ctx context.Context, originalID string, cat model.RateCategory) (int64, error) {
	tag, err := s.db.Exec(ctx, updateRateCategoryQuery,
		originalID, cat.ID, cat.Label, cat.Heading, cat.Description, cat.Tags, cat.Plans, cat.Deliverables)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteRateCategoryQuery = `
DELETE FROM rate_categories WHERE id = $1
`

func (s *Store) DeleteRateCategory(ctx context.Context, id string) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteRateCategoryQuery, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
