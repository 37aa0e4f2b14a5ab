package domain

import (
	"fmt"
	"time"
)

// DatasetKind distinguishes the two shapes of regulatory data.
type DatasetKind string

const (
	// KindRegulation is full legal text organised into sections
	// (REACH articles, CFR sections, CSCRA 條文).
	KindRegulation DatasetKind = "regulation"

	// KindInventory is a tabular chemical list keyed by CAS number
	// (TSCA Inventory, ECHA inventory, TW toxic chemical list).
	KindInventory DatasetKind = "inventory"
)

// IsValid returns true if the dataset kind is recognised.
func (k DatasetKind) IsValid() bool {
	return k == KindRegulation || k == KindInventory
}

// Source represents a configured regulatory data source.
// Each source produces snapshots via a scraper and belongs to one jurisdiction.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type identifies the scraper type (e.g., "eurlex", "tsca", "localdir").
	Type string

	// Slug is the stable dataset name used for snapshot files and lookups
	// (e.g., "eu_reach_eurlex", "us_tsca_inventory").
	Slug string

	// Name is the human-readable name for this source.
	Name string

	// Jurisdiction is the market this source covers.
	Jurisdiction Market

	// Dataset is the shape of data the source produces.
	Dataset DatasetKind

	// URL is the upstream location the scraper fetches from.
	URL string

	// Config contains scraper-specific configuration.
	Config map[string]string

	// Enabled controls whether the source participates in SyncAll
	// and scheduled freshness checks.
	Enabled bool

	// CreatedAt is when the source was created.
	CreatedAt time.Time

	// UpdatedAt is when the source was last updated.
	UpdatedAt time.Time
}

// DisplayName returns the source name with its jurisdiction for CLI/TUI display.
func (s *Source) DisplayName() string {
	if s.Jurisdiction == "" {
		return s.Name
	}
	return fmt.Sprintf("%s [%s]", s.Name, s.Jurisdiction)
}

// SyncState tracks the synchronisation progress for a source.
type SyncState struct {
	// SourceID links to the Source being synced.
	SourceID string

	// Cursor is an opaque token for change detection. For page scrapers
	// this is the SHA-256 of the last fetched content.
	Cursor string

	// LastSync is when the last successful sync completed.
	LastSync time.Time
}

// Stale reports whether the state is older than the given maximum age.
// A zero LastSync is always stale.
func (s *SyncState) Stale(maxAge time.Duration, now time.Time) bool {
	if s == nil || s.LastSync.IsZero() {
		return true
	}
	return now.Sub(s.LastSync) > maxAge
}
