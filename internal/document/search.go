package document

import "strings"

// Search filters docs by a case-insensitive substring match against the
// title, summary and tags. A blank query returns every document. The input
// slice is never modified.
func Search(docs []Document, query string) []Document {
	keyword := strings.ToLower(strings.TrimSpace(query))
	if keyword == "" {
		out := make([]Document, len(docs))
		copy(out, docs)
		return out
	}

	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if strings.Contains(searchPool(d), keyword) {
			out = append(out, d)
		}
	}
	return out
}

func searchPool(d Document) string {
	return strings.ToLower(strings.Join([]string{d.Title, d.Summary, strings.Join(d.Tags, " ")}, " "))
}

// NewSearchResult runs Search and wraps the outcome.
func NewSearchResult(docs []Document, query string) SearchResult {
	found := Search(docs, query)
	return SearchResult{
		Query:     strings.TrimSpace(query),
		Documents: found,
		Total:     len(found),
	}
}
