// Package document holds the clinical reference documents attached to a
// patient and the local search over them.
package document

// Document is a protocol, guideline or checklist linked to a patient.
type Document struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Source    string   `json:"source"`
	UpdatedAt string   `json:"updated_at"`
	Summary   string   `json:"summary"`
	Tags      []string `json:"tags"`
}

// SearchResult is returned by the search endpoint.
type SearchResult struct {
	Query     string     `json:"query"`
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
}
