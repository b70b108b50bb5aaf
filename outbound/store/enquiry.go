package store

import (
	"context"

	"design-folio/model"
)

type InsertEnquiryParams struct {
	ExternalID string
	Name       string
	Email      string
	Company    string
	CategoryID string
	PlanID     string
	Message    string
}

const insertEnquiryQuery = `
INSERT INTO enquiries (external_id, name, email, company, category_id, plan_id, message)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

func (s *Store) InsertEnquiry(ctx context.Context, params InsertEnquiryParams) (int32, error) {
	var id int32
	err := s.db.QueryRow(ctx, insertEnquiryQuery,
		params.ExternalID, params.Name, params.Email, params.Company,
		params.CategoryID, params.PlanID, params.Message).Scan(&id)
	return id, err
}

const listEnquiriesQuery = `
SELECT id, external_id, name, email, company, category_id, plan_id, message, created_at
FROM enquiries
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`

func (s *Store) ListEnquiries(ctx context.Context, limit, offset int32) ([]model.Enquiry, error) {
	rows, err := s.db.Query(ctx, listEnquiriesQuery, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Enquiry
	for rows.Next() {
		var e model.Enquiry
		err = rows.Scan(&e.ID, &e.ExternalID, &e.Name, &e.Email, &e.Company,
			&e.CategoryID, &e.PlanID, &e.Message, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

const countEnquiriesQuery = `
SELECT count(*) FROM enquiries
`

func (s *Store) CountEnquiries(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRow(ctx, countEnquiriesQuery).Scan(&total)
	return total, err
}
