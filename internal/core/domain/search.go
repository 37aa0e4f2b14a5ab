package domain

// SearchOptions configures a section search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// Slugs filters to specific datasets.
	Slugs []string

	// Market filters to one jurisdiction. Empty means all.
	Market Market

	// Rewrite enables LLM query expansion before searching.
	Rewrite bool
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Section is the matched regulation section.
	Section Section

	// Slug is the dataset the section belongs to.
	Slug string

	// SourceName is the display name of the source.
	SourceName string

	// Score is the relevance score.
	Score float64

	// Highlights contains snippets with matched terms.
	Highlights []string
}
