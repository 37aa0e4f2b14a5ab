package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// regulationStore implements driven.RegulationStore.
type regulationStore struct {
	store *Store
}

var _ driven.RegulationStore = (*regulationStore)(nil)

const snapshotColumns = "id, source_id, slug, uri, title, regulation_number, document_type, version_date, content, sha256, fetched_at"

// SaveSnapshot stores a snapshot.
func (s *regulationStore) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO snapshots (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.SourceID, snap.Slug, snap.URI, snap.Title,
		snap.RegulationNumber, snap.DocumentType, snap.VersionDate,
		snap.Content, snap.SHA256, snap.FetchedAt)

	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// SaveSections stores sections for a snapshot.
func (s *regulationStore) SaveSections(ctx context.Context, sections []domain.Section) error {
	if len(sections) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sections (id, snapshot_id, citation, heading, body, position)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			snapshot_id = excluded.snapshot_id,
			citation = excluded.citation,
			heading = excluded.heading,
			body = excluded.body,
			position = excluded.position
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, sec := range sections {
		if _, err := stmt.ExecContext(ctx, sec.ID, sec.SnapshotID,
			sec.Citation, sec.Heading, sec.Text, sec.Position); err != nil {
			return fmt.Errorf("saving section: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveListings stores listings, replacing previous listings for the same source.
func (s *regulationStore) SaveListings(ctx context.Context, sourceID string, listings []domain.Listing) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM listings WHERE source_id = ?", sourceID); err != nil {
		return fmt.Errorf("clearing listings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (id, source_id, slug, jurisdiction, cas, chemical_name,
			list_name, classification, citation, activity, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, l := range listings {
		if _, err := stmt.ExecContext(ctx, l.ID, l.SourceID, l.Slug,
			string(l.Jurisdiction), l.CAS, l.ChemicalName, l.ListName,
			string(l.Classification), l.Citation, l.Activity, l.FetchedAt); err != nil {
			return fmt.Errorf("saving listing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetSnapshot retrieves a snapshot by ID.
func (s *regulationStore) GetSnapshot(ctx context.Context, id string) (*domain.Snapshot, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+snapshotColumns+" FROM snapshots WHERE id = ?", id)
	return scanSnapshot(row)
}

// LatestSnapshot returns the most recent snapshot for a slug.
func (s *regulationStore) LatestSnapshot(ctx context.Context, slug string) (*domain.Snapshot, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+snapshotColumns+" FROM snapshots WHERE slug = ? ORDER BY fetched_at DESC LIMIT 1", slug)
	return scanSnapshot(row)
}

// ListSnapshots returns snapshots for a slug, most recent first.
func (s *regulationStore) ListSnapshots(ctx context.Context, slug string, limit int) ([]domain.Snapshot, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+snapshotColumns+" FROM snapshots WHERE slug = ? ORDER BY fetched_at DESC LIMIT ?",
		slug, limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.Snapshot //nolint:prealloc // size unknown from query
	for rows.Next() {
		var snap domain.Snapshot
		if err := rows.Scan(&snap.ID, &snap.SourceID, &snap.Slug, &snap.URI,
			&snap.Title, &snap.RegulationNumber, &snap.DocumentType,
			&snap.VersionDate, &snap.Content, &snap.SHA256, &snap.FetchedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snaps, nil
}

// GetSections retrieves all sections for a snapshot, in position order.
func (s *regulationStore) GetSections(ctx context.Context, snapshotID string) ([]domain.Section, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, snapshot_id, citation, heading, body, position
		FROM sections WHERE snapshot_id = ?
		ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.Section //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sec domain.Section
		if err := rows.Scan(&sec.ID, &sec.SnapshotID, &sec.Citation,
			&sec.Heading, &sec.Text, &sec.Position); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		sections = append(sections, sec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return sections, nil
}

// GetSection retrieves a single section by ID.
func (s *regulationStore) GetSection(ctx context.Context, id string) (*domain.Section, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, snapshot_id, citation, heading, body, position
		FROM sections WHERE id = ?
	`, id)

	var sec domain.Section
	if err := row.Scan(&sec.ID, &sec.SnapshotID, &sec.Citation,
		&sec.Heading, &sec.Text, &sec.Position); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning section: %w", err)
	}
	return &sec, nil
}

// ListingsByCAS returns listings matching any of the CAS numbers within a market.
func (s *regulationStore) ListingsByCAS(ctx context.Context, cas []string, market domain.Market) ([]domain.Listing, error) {
	if len(cas) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(cas))
	placeholders = placeholders[:len(placeholders)-1]

	query := "SELECT " + listingColumns + " FROM listings WHERE cas IN (" + placeholders + ")"
	args := make([]any, 0, len(cas)+1)
	for _, c := range cas {
		args = append(args, c)
	}
	if market != "" && market != domain.MarketGlobal {
		query += " AND jurisdiction = ?"
		args = append(args, string(market))
	}
	query += " ORDER BY slug"

	return s.queryListings(ctx, query, args...)
}

// ListingsByName returns listings whose chemical name matches, case-insensitively.
func (s *regulationStore) ListingsByName(ctx context.Context, name string, market domain.Market) ([]domain.Listing, error) {
	query := "SELECT " + listingColumns + " FROM listings WHERE chemical_name = ? COLLATE NOCASE"
	args := []any{name}
	if market != "" && market != domain.MarketGlobal {
		query += " AND jurisdiction = ?"
		args = append(args, string(market))
	}
	query += " ORDER BY slug"

	return s.queryListings(ctx, query, args...)
}

// DeleteBySource removes all snapshots, sections and listings for a source.
func (s *regulationStore) DeleteBySource(ctx context.Context, sourceID string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Sections cascade from snapshots; the FTS shadow rows do not.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM sections_fts WHERE snapshot_id IN (
			SELECT id FROM snapshots WHERE source_id = ?
		)
	`, sourceID); err != nil {
		return fmt.Errorf("clearing search index: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE source_id = ?", sourceID); err != nil {
		return fmt.Errorf("deleting snapshots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM listings WHERE source_id = ?", sourceID); err != nil {
		return fmt.Errorf("deleting listings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

const listingColumns = "id, source_id, slug, jurisdiction, cas, chemical_name, list_name, classification, citation, activity, fetched_at"

func (s *regulationStore) queryListings(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing //nolint:prealloc // size unknown from query
	for rows.Next() {
		var l domain.Listing
		var jurisdiction, classification string
		if err := rows.Scan(&l.ID, &l.SourceID, &l.Slug, &jurisdiction,
			&l.CAS, &l.ChemicalName, &l.ListName, &classification,
			&l.Citation, &l.Activity, &l.FetchedAt); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		l.Jurisdiction = domain.Market(jurisdiction)
		l.Classification = domain.Classification(classification)
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}
	return listings, nil
}

// scanSnapshot scans a single snapshot row.
func scanSnapshot(row *sql.Row) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := row.Scan(&snap.ID, &snap.SourceID, &snap.Slug, &snap.URI,
		&snap.Title, &snap.RegulationNumber, &snap.DocumentType,
		&snap.VersionDate, &snap.Content, &snap.SHA256, &snap.FetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	return &snap, nil
}
