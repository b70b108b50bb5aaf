package model

import "time"

type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CoverURL    string    `json:"cover_url"`
	ProjectURL  string    `json:"project_url"`
	Year        int       `json:"year"`
	Published   bool      `json:"published"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectInput struct {
	ID          *string `json:"id"`
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
	Description *string `json:"description"`
	Tags        any     `json:"tags"`
	CoverURL    *string `json:"cover_url"`
	ProjectURL  *string `json:"project_url"`
	Year        *int    `json:"year"`
	Published   *bool   `json:"published"`
	SortOrder   *int    `json:"sort_order"`
}

type ListProjectsResponse struct {
	Projects []Project `json:"projects"`
}
