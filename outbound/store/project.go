package store

import (
	"context"

	"design-folio/model"
)

const listProjectsQuery = `
SELECT id, title, summary, description, tags, cover_url, project_url, year, published, sort_order, created_at, updated_at
FROM projects
WHERE published OR NOT $1
ORDER BY sort_order, year DESC, id
`

// ListProjects returns all projects, or only published ones when
// publishedOnly is set.
func (s *Store) ListProjects(ctx context.Context, publishedOnly bool) ([]model.Project, error) {
	rows, err := s.db.Query(ctx, listProjectsQuery, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		var p model.Project
		err = rows.Scan(&p.ID, &p.Title, &p.Summary, &p.Description, &p.Tags, &p.CoverURL,
			&p.ProjectURL, &p.Year, &p.Published, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

const getProjectQuery = `
SELECT id, title, summary, description, tags, cover_url, project_url, year, published, sort_order, created_at, updated_at
FROM projects
WHERE id = $1
`

func (s *Store) GetProject(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	err := s.db.QueryRow(ctx, getProjectQuery, id).
		Scan(&p.ID, &p.Title, &p.Summary, &p.Description, &p.Tags, &p.CoverURL,
			&p.ProjectURL, &p.Year, &p.Published, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const projectExistsQuery = `
SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)
`

func (s *Store) ProjectExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, projectExistsQuery, id).Scan(&exists)
	return exists, err
}

const insertProjectQuery = `
INSERT INTO projects (id, title, summary, description, tags, cover_url, project_url, year, published, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

func (s *Store) InsertProject(ctx context.Context, p model.Project) error {
	_, err := s.db.Exec(ctx, insertProjectQuery,
		p.ID, p.Title, p.Summary, p.Description, p.Tags, p.CoverURL, p.ProjectURL, p.Year, p.Published, p.SortOrder)
	return err
}

const updateProjectQuery = `
UPDATE projects
SET id = $2, title = $3, summary = $4, description = $5, tags = $6, cover_url = $7, project_url = $8, year = $9, published = $10, sort_order = $11, updated_at = now()
WHERE id = $1
`

func (s *Store) UpdateProject(ctx context.Context, originalID string, p model.Project) (int64, error) {
	tag, err := s.db.Exec(ctx, updateProjectQuery,
		originalID, p.ID, p.Title, p.Summary, p.Description, p.Tags, p.CoverURL, p.ProjectURL, p.Year, p.Published, p.SortOrder)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteProjectQuery = `
DELETE FROM projects WHERE id = $1
`

func (s *Store) DeleteProject(ctx context.Context, id string) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteProjectQuery, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
