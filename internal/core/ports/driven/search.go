package driven

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// SearchEngine provides full-text search over regulation sections.
// Backed by SQLite FTS5.
type SearchEngine interface {
	// Index adds or updates a section in the search index.
	Index(ctx context.Context, section domain.Section) error

	// Delete removes a section from the search index.
	Delete(ctx context.Context, sectionID string) error

	// DeleteSnapshot removes every section of a snapshot from the index.
	DeleteSnapshot(ctx context.Context, snapshotID string) error

	// Search performs a keyword search and returns matching section IDs
	// with scores.
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)

	// Close releases resources.
	Close() error
}

// SearchHit represents a search result from the engine.
type SearchHit struct {
	// SectionID is the matched section.
	SectionID string

	// Score is the relevance score (e.g., BM25).
	Score float64

	// Snippet is a highlighted excerpt, if the engine produces one.
	Snippet string
}
