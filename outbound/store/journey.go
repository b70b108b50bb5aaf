package store

import (
	"context"

	"design-folio/model"
)

const listJourneyQuery = `
SELECT id, title, subtitle, period, body, sort_order
FROM journey_entries
ORDER BY sort_order, id
`

func (s *Store) ListJourneyEntries(ctx context.Context) ([]model.JourneyEntry, error) {
	rows, err := s.db.Query(ctx, listJourneyQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.JourneyEntry
	for rows.Next() {
		var e model.JourneyEntry
		err = rows.Scan(&e.ID, &e.Title, &e.Subtitle, &e.Period, &e.Body, &e.SortOrder)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

const getJourneyQuery = `
SELECT id, title, subtitle, period, body, sort_order
FROM journey_entries
WHERE id = $1
`

func (s *Store) GetJourneyEntry(ctx context.Context, id string) (model.JourneyEntry, error) {
	var e model.JourneyEntry
	err := s.db.QueryRow(ctx, getJourneyQuery, id).
		Scan(&e.ID, &e.Title, &e.Subtitle, &e.Period, &e.Body, &e.SortOrder)
	return e, err
}

const journeyExistsQuery = `
SELECT EXISTS (SELECT 1 FROM journey_entries WHERE id = $1)
`

func (s *Store) JourneyEntryExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, journeyExistsQuery, id).Scan(&exists)
	return exists, err
}

const insertJourneyQuery = `
INSERT INTO journey_entries (id, title, subtitle, period, body, sort_order)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (s *Store) InsertJourneyEntry(ctx context.Context, e model.JourneyEntry) error {
	_, err := s.db.Exec(ctx, insertJourneyQuery, e.ID, e.Title, e.Subtitle, e.Period, e.Body, e.SortOrder)
	return err
}

const updateJourneyQuery = `
UPDATE journey_entries
SET id = $2, title = $3, subtitle = $4, period = $5, body = $6, sort_order = $7
WHERE id = $1
`

func (s *Store) UpdateJourneyEntry(ctx context.Context, originalID string, e model.JourneyEntry) (int64, error) {
	tag, err := s.db.Exec(ctx, updateJourneyQuery, originalID, e.ID, e.Title, e.Subtitle, e.Period, e.Body, e.SortOrder)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteJourneyQuery = `
DELETE FROM journey_entries WHERE id = $1
`

func (s *Store) DeleteJourneyEntry(ctx context.Context, id string) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteJourneyQuery, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
