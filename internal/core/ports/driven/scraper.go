package driven

import (
	"context"
	"errors"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// Scraper fetches regulatory data from an upstream source.
// Each scraper type (eurlex, tsca, cscra, etc.) implements this interface.
type Scraper interface {
	// Type returns the scraper type identifier.
	Type() string

	// SourceID returns the configured source ID.
	SourceID() string

	// Capabilities returns what this scraper supports.
	Capabilities() ScraperCapabilities

	// Validate checks if the scraper is properly configured.
	// Performs a lightweight check to verify the scraper is ready to sync.
	// For HTTP scrapers this typically issues a HEAD-like probe; for the
	// local directory scraper it checks the path exists and is readable.
	// Returns nil if ready to sync, error describing the problem otherwise.
	Validate(ctx context.Context) error

	// Fetch retrieves the source's current content.
	// Returns channels for raw snapshots and errors. Scrapers that
	// support cursor return send SyncComplete on the error channel
	// upon successful completion.
	Fetch(ctx context.Context) (<-chan domain.RawSnapshot, <-chan error)

	// Watch listens for local changes.
	// Only available if SupportsWatch is true.
	Watch(ctx context.Context) (<-chan domain.SnapshotChange, error)

	// Close releases resources.
	Close() error
}

// ScraperCapabilities describes what a scraper supports.
type ScraperCapabilities struct {
	// SupportsWatch indicates the scraper can push change events
	// (only the local directory scraper does).
	SupportsWatch bool

	// SupportsValidation indicates Validate() performs an actual check.
	SupportsValidation bool

	// SupportsCursorReturn indicates Fetch can return an updated cursor
	// via the SyncComplete sentinel on the error channel.
	SupportsCursorReturn bool

	// SupportsRateLimiting indicates the scraper throttles itself.
	// Informational; helps the orchestrator understand scraper behaviour.
	SupportsRateLimiting bool

	// SupportsPagination indicates the scraper handles paginated upstreams.
	// Scrapers handle pagination internally; this is informational.
	SupportsPagination bool

	// RequiresAuth indicates the scraper needs a token
	// (only the GitHub mirror scraper, and only for private mirrors).
	RequiresAuth bool
}

// SyncComplete is sent on the error channel when a fetch completes
// successfully. Carries the new cursor (content hash) for change detection.
type SyncComplete struct {
	NewCursor string
}

// Error implements the error interface.
// This allows SyncComplete to be sent on the error channel.
func (SyncComplete) Error() string {
	return "sync complete"
}

// IsSyncComplete checks if an error is actually a successful completion.
// Returns the SyncComplete and true if it is, nil and false otherwise.
func IsSyncComplete(err error) (*SyncComplete, bool) {
	var sc *SyncComplete
	if errors.As(err, &sc) {
		return sc, true
	}
	return nil, false
}

// ScraperBuilder creates a Scraper from a Source.
type ScraperBuilder func(source domain.Source) (Scraper, error)

// ScraperFactory creates scrapers from source configuration.
// It maintains a registry of scraper types and their builders.
type ScraperFactory interface {
	// Create returns a Scraper for the given source.
	// Returns ErrUnsupportedType if the source type is unknown.
	Create(ctx context.Context, source domain.Source) (Scraper, error)

	// Register adds a scraper builder for the given type.
	Register(scraperType string, builder ScraperBuilder)

	// SupportedTypes returns all registered scraper types.
	SupportedTypes() []string
}
