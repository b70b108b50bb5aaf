package model

// JourneyEntry is one step of the about-page timeline. Body is stored as
// ordered paragraphs, normalized from either a newline-separated string or
// a list of strings on the way in.
type JourneyEntry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	Period    string   `json:"period"`
	Body      []string `json:"body"`
	SortOrder int      `json:"sort_order"`
}

type JourneyEntryInput struct {
	ID        *string `json:"id"`
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	Period    *string `json:"period"`
	Body      any     `json:"body"`
	SortOrder *int    `json:"sort_order"`
}

type ListJourneyResponse struct {
	Entries []JourneyEntry `json:"entries"`
}
