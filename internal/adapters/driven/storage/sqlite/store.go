package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.regwatch/data/regwatch.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".regwatch", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "regwatch.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SourceStore returns a SourceStore interface backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

// SyncStateStore returns a SyncStateStore interface backed by this store.
func (s *Store) SyncStateStore() driven.SyncStateStore {
	return &syncStateStore{store: s}
}

// RegulationStore returns a RegulationStore interface backed by this store.
func (s *Store) RegulationStore() driven.RegulationStore {
	return &regulationStore{store: s}
}

// ChemicalStore returns a ChemicalStore interface backed by this store.
func (s *Store) ChemicalStore() driven.ChemicalStore {
	return &chemicalStore{store: s}
}

// DiagnosisStore returns a DiagnosisStore interface backed by this store.
func (s *Store) DiagnosisStore() driven.DiagnosisStore {
	return &diagnosisStore{store: s}
}

// SchedulerStore returns a SchedulerStore interface backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// SearchEngine returns a SearchEngine interface backed by the FTS5 index.
func (s *Store) SearchEngine() driven.SearchEngine {
	return &searchEngine{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Source Store ====================

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

// Save stores or updates a source.
func (s *sourceStore) Save(ctx context.Context, source domain.Source) error {
	configJSON, err := json.Marshal(source.Config)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	now := time.Now().UTC()
	if source.CreatedAt.IsZero() {
		source.CreatedAt = now
	}
	source.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sources (id, type, slug, name, jurisdiction, dataset, url, config, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			slug = excluded.slug,
			name = excluded.name,
			jurisdiction = excluded.jurisdiction,
			dataset = excluded.dataset,
			url = excluded.url,
			config = excluded.config,
			enabled = excluded.enabled,
			updated_at = excluded.updated_at
	`, source.ID, source.Type, source.Slug, source.Name, string(source.Jurisdiction),
		string(source.Dataset), source.URL, string(configJSON), boolToInt(source.Enabled),
		source.CreatedAt, source.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

const sourceColumns = "id, type, slug, name, jurisdiction, dataset, url, config, enabled, created_at, updated_at"

// Get retrieves a source by ID.
func (s *sourceStore) Get(ctx context.Context, id string) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+sourceColumns+" FROM sources WHERE id = ?", id)
	return scanSource(row)
}

// GetBySlug retrieves a source by dataset slug.
func (s *sourceStore) GetBySlug(ctx context.Context, slug string) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+sourceColumns+" FROM sources WHERE slug = ?", slug)
	return scanSource(row)
}

// Delete removes a source.
func (s *sourceStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}

// List returns all configured sources.
func (s *sourceStore) List(ctx context.Context) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+sourceColumns+" FROM sources ORDER BY slug")
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source //nolint:prealloc // size unknown from query
	for rows.Next() {
		source, err := scanSourceRows(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

// scanSource scans a single source row.
func scanSource(row *sql.Row) (*domain.Source, error) {
	var source domain.Source
	var jurisdiction, dataset, configJSON string
	var enabled int
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&source.ID, &source.Type, &source.Slug, &source.Name,
		&jurisdiction, &dataset, &source.URL, &configJSON, &enabled,
		&createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}

	return finishSource(&source, jurisdiction, dataset, configJSON, enabled, createdAt, updatedAt)
}

// scanSourceRows scans a source from *sql.Rows.
func scanSourceRows(rows *sql.Rows) (*domain.Source, error) {
	var source domain.Source
	var jurisdiction, dataset, configJSON string
	var enabled int
	var createdAt, updatedAt sql.NullTime

	if err := rows.Scan(&source.ID, &source.Type, &source.Slug, &source.Name,
		&jurisdiction, &dataset, &source.URL, &configJSON, &enabled,
		&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning source: %w", err)
	}

	return finishSource(&source, jurisdiction, dataset, configJSON, enabled, createdAt, updatedAt)
}

func finishSource(source *domain.Source, jurisdiction, dataset, configJSON string,
	enabled int, createdAt, updatedAt sql.NullTime,
) (*domain.Source, error) {
	source.Jurisdiction = domain.Market(jurisdiction)
	source.Dataset = domain.DatasetKind(dataset)
	source.Enabled = enabled == 1

	if err := json.Unmarshal([]byte(configJSON), &source.Config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if createdAt.Valid {
		source.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		source.UpdatedAt = updatedAt.Time
	}
	return source, nil
}

// ==================== Sync State Store ====================

// syncStateStore implements driven.SyncStateStore.
type syncStateStore struct {
	store *Store
}

var _ driven.SyncStateStore = (*syncStateStore)(nil)

// Save stores or updates sync state.
func (s *syncStateStore) Save(ctx context.Context, state domain.SyncState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_state (source_id, cursor, last_sync)
		VALUES (?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			cursor = excluded.cursor,
			last_sync = excluded.last_sync
	`, state.SourceID, state.Cursor, state.LastSync)
	if err != nil {
		return fmt.Errorf("saving sync state: %w", err)
	}
	return nil
}

// Get retrieves sync state for a source.
func (s *syncStateStore) Get(ctx context.Context, sourceID string) (*domain.SyncState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT source_id, cursor, last_sync FROM sync_state WHERE source_id = ?
	`, sourceID)

	var state domain.SyncState
	var lastSync sql.NullTime
	if err := row.Scan(&state.SourceID, &state.Cursor, &lastSync); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning sync state: %w", err)
	}
	if lastSync.Valid {
		state.LastSync = lastSync.Time
	}
	return &state, nil
}

// Delete removes sync state for a source.
func (s *syncStateStore) Delete(ctx context.Context, sourceID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sync_state WHERE source_id = ?", sourceID)
	if err != nil {
		return fmt.Errorf("deleting sync state: %w", err)
	}
	return nil
}

