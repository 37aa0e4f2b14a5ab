package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// searchEngine implements driven.SearchEngine on top of an FTS5 virtual
// table. It shares the Store's connection, so Close is a no-op.
type searchEngine struct {
	store *Store
}

var _ driven.SearchEngine = (*searchEngine)(nil)

// Index adds or updates a section in the search index.
func (e *searchEngine) Index(ctx context.Context, section domain.Section) error {
	if section.ID == "" {
		return domain.ErrInvalidInput
	}

	// FTS5 has no upsert; delete-then-insert keeps the index consistent.
	if _, err := e.store.db.ExecContext(ctx,
		"DELETE FROM sections_fts WHERE section_id = ?", section.ID); err != nil {
		return fmt.Errorf("clearing index entry: %w", err)
	}

	_, err := e.store.db.ExecContext(ctx, `
		INSERT INTO sections_fts (section_id, snapshot_id, citation, heading, body)
		VALUES (?, ?, ?, ?, ?)
	`, section.ID, section.SnapshotID, section.Citation, section.Heading, section.Text)

	if err != nil {
		return fmt.Errorf("indexing section: %w", err)
	}
	return nil
}

// Delete removes a section from the search index.
func (e *searchEngine) Delete(ctx context.Context, sectionID string) error {
	if _, err := e.store.db.ExecContext(ctx,
		"DELETE FROM sections_fts WHERE section_id = ?", sectionID); err != nil {
		return fmt.Errorf("deleting index entry: %w", err)
	}
	return nil
}

// DeleteSnapshot removes every section of a snapshot from the index.
func (e *searchEngine) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	if _, err := e.store.db.ExecContext(ctx,
		"DELETE FROM sections_fts WHERE snapshot_id = ?", snapshotID); err != nil {
		return fmt.Errorf("deleting index entries: %w", err)
	}
	return nil
}

// Search performs a keyword search and returns matching section IDs with
// BM25 scores (lower is better in SQLite; negated here so higher is better).
func (e *searchEngine) Search(ctx context.Context, query string, limit int) ([]driven.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := e.store.db.QueryContext(ctx, `
		SELECT section_id,
			bm25(sections_fts),
			snippet(sections_fts, 4, '<<', '>>', '...', 16)
		FROM sections_fts
		WHERE sections_fts MATCH ?
		ORDER BY bm25(sections_fts)
		LIMIT ?
	`, ftsQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching sections: %w", err)
	}
	defer rows.Close()

	var hits []driven.SearchHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit driven.SearchHit
		var rank float64
		if err := rows.Scan(&hit.SectionID, &rank, &hit.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search hit: %w", err)
		}
		hit.Score = -rank
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search hits: %w", err)
	}
	return hits, nil
}

// Close releases resources. The engine shares the store's connection,
// which the store owns, so there is nothing to release here.
func (e *searchEngine) Close() error {
	return nil
}

// ftsQuery quotes each user term so that characters with FTS5 operator
// meaning (hyphens in CAS numbers, colons, parentheses) are treated as
// literal text.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ReplaceAll(t, `"`, "")
		if t == "" {
			continue
		}
		quoted = append(quoted, `"`+t+`"`)
	}
	return strings.Join(quoted, " ")
}
