package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator coordinates regulatory data synchronisation.
type SyncOrchestrator struct {
	sourceStore driven.SourceStore
	syncStore   driven.SyncStateStore
	regStore    driven.RegulationStore
	factory     driven.ScraperFactory
	registry    driven.NormaliserRegistry
	searchIndex driven.SearchEngine

	// Status tracking
	mu          sync.RWMutex
	activeSyncs map[string]*driving.SyncStatus
}

// NewSyncOrchestrator creates a new sync orchestrator.
// The searchIndex receives every stored section; pass nil to disable
// full-text indexing (tests).
func NewSyncOrchestrator(
	sourceStore driven.SourceStore,
	syncStore driven.SyncStateStore,
	regStore driven.RegulationStore,
	factory driven.ScraperFactory,
	registry driven.NormaliserRegistry,
	searchIndex driven.SearchEngine,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		sourceStore: sourceStore,
		syncStore:   syncStore,
		regStore:    regStore,
		factory:     factory,
		registry:    registry,
		searchIndex: searchIndex,
		activeSyncs: make(map[string]*driving.SyncStatus),
	}
}

// Sync triggers synchronisation for a source.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (o *SyncOrchestrator) Sync(ctx context.Context, sourceID string) error {
	// 1. Get source configuration
	source, err := o.sourceStore.Get(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("get source: %w", err)
	}

	// 2. Create scraper from source
	if o.factory == nil {
		return fmt.Errorf("create scraper: scraper factory not configured")
	}
	scraper, err := o.factory.Create(ctx, *source)
	if err != nil {
		return fmt.Errorf("create scraper: %w", err)
	}
	defer scraper.Close()

	// 3. Validate scraper (check configuration, connectivity)
	caps := scraper.Capabilities()
	if caps.SupportsValidation {
		if err := scraper.Validate(ctx); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrScraperValidation, err)
		}
	}

	// 4. Get sync state (for change detection)
	syncState, err := o.syncStore.Get(ctx, sourceID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get sync state: %w", err)
	}

	// 5. Initialise status tracking
	status := &driving.SyncStatus{
		SourceID: sourceID,
		Running:  true,
	}
	o.setStatus(sourceID, status)
	defer o.clearStatus(sourceID)

	logger.Info("Starting sync for source %s (%s)", sourceID, source.Slug)

	// 6. Fetch and process snapshots
	snapsCh, errsCh := scraper.Fetch(ctx)
	newCursor, err := o.processSnapshots(ctx, source, snapsCh, errsCh, status)
	if err != nil {
		return err
	}

	// Fall back to a timestamp cursor for scrapers that don't report one.
	if newCursor == "" && caps.SupportsCursorReturn {
		newCursor = fmt.Sprintf("%d", time.Now().UnixNano())
	}

	// An unchanged cursor means the upstream content is identical to the
	// previous sync; nothing was re-stored.
	if syncState != nil && syncState.Cursor != "" && syncState.Cursor == newCursor {
		status.Unchanged = true
	}

	// 7. Update sync state with new cursor
	newState := domain.SyncState{
		SourceID: sourceID,
		Cursor:   newCursor,
		LastSync: time.Now(),
	}
	if err := o.syncStore.Save(ctx, newState); err != nil {
		return fmt.Errorf("save sync state: %w", err)
	}

	logger.Info("Sync complete: %d snapshots, %d listings, %d errors",
		status.SnapshotsProcessed, status.ListingsSaved, status.ErrorCount)
	status.Running = false
	return nil
}

// SyncAll triggers synchronisation for all enabled sources.
func (o *SyncOrchestrator) SyncAll(ctx context.Context) error {
	sources, err := o.sourceStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	var errs []error
	for _, source := range sources {
		if !source.Enabled {
			continue
		}
		if err := o.Sync(ctx, source.ID); err != nil {
			errs = append(errs, fmt.Errorf("sync %s: %w", source.Slug, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Status returns sync status for a source.
func (o *SyncOrchestrator) Status(_ context.Context, sourceID string) (*driving.SyncStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if status, ok := o.activeSyncs[sourceID]; ok {
		// Return a copy to avoid race conditions
		return &driving.SyncStatus{
			SourceID:           status.SourceID,
			Running:            status.Running,
			SnapshotsProcessed: status.SnapshotsProcessed,
			ListingsSaved:      status.ListingsSaved,
			ErrorCount:         status.ErrorCount,
			Unchanged:          status.Unchanged,
		}, nil
	}

	// Not running - return idle status
	return &driving.SyncStatus{
		SourceID: sourceID,
		Running:  false,
	}, nil
}

// processSnapshots drains the fetch channels, normalising and storing
// each snapshot. Returns the new cursor from SyncComplete if the
// scraper provides one.
//
//nolint:gocognit // Orchestration function coordinating multiple async operations
func (o *SyncOrchestrator) processSnapshots(
	ctx context.Context,
	source *domain.Source,
	snapsCh <-chan domain.RawSnapshot,
	errsCh <-chan error,
	status *driving.SyncStatus,
) (string, error) {
	var newCursor string

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			// Check if this is a SyncComplete (successful completion with cursor)
			if sc, isSyncComplete := driven.IsSyncComplete(err); isSyncComplete {
				newCursor = sc.NewCursor
				continue
			}
			if err != nil {
				return "", fmt.Errorf("scraper error: %w", err)
			}

		case raw, ok := <-snapsCh:
			if !ok {
				return newCursor, nil // Done - channel closed
			}

			logger.Debug("Processing: %s", raw.URI)
			if err := o.processOneSnapshot(ctx, source, &raw, status); err != nil {
				status.ErrorCount++
				logger.Debug("Failed to process %s: %v", raw.URI, err)
				continue
			}
			status.SnapshotsProcessed++
		}
	}
}

// processOneSnapshot normalises one raw snapshot and persists the result.
func (o *SyncOrchestrator) processOneSnapshot(
	ctx context.Context,
	source *domain.Source,
	raw *domain.RawSnapshot,
	status *driving.SyncStatus,
) error {
	// 1. NORMALISE (produces Snapshot + Sections + Listings)
	normaliser, err := o.registry.Get(source.Dataset)
	if err != nil {
		return fmt.Errorf("get normaliser: %w", err)
	}
	result, err := normaliser.Normalise(ctx, *source, raw)
	if err != nil {
		return fmt.Errorf("normalise: %w", err)
	}

	// 2. HASH-COMPARE against the latest stored snapshot
	latest, err := o.regStore.LatestSnapshot(ctx, source.Slug)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("latest snapshot: %w", err)
	}
	if latest != nil && latest.SHA256 == result.Snapshot.SHA256 {
		logger.Debug("Unchanged: %s (%s)", source.Slug, latest.SHA256[:12])
		return nil
	}

	// 3. SAVE SNAPSHOT + SECTIONS
	if err := o.regStore.SaveSnapshot(ctx, &result.Snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if len(result.Sections) > 0 {
		if err := o.regStore.SaveSections(ctx, result.Sections); err != nil {
			return fmt.Errorf("save sections: %w", err)
		}
	}

	// 4. SAVE LISTINGS (replaces the source's previous listings)
	if len(result.Listings) > 0 {
		if err := o.regStore.SaveListings(ctx, source.ID, result.Listings); err != nil {
			return fmt.Errorf("save listings: %w", err)
		}
		status.ListingsSaved += len(result.Listings)
	}

	// 5. INDEX SECTIONS FOR KEYWORD SEARCH
	if o.searchIndex != nil {
		for _, section := range result.Sections {
			if err := o.searchIndex.Index(ctx, section); err != nil {
				return fmt.Errorf("index section: %w", err)
			}
		}
	}

	return nil
}

// setStatus sets the sync status for a source.
func (o *SyncOrchestrator) setStatus(sourceID string, status *driving.SyncStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.activeSyncs[sourceID] = status
}

// clearStatus removes the sync status for a source.
func (o *SyncOrchestrator) clearStatus(sourceID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.activeSyncs, sourceID)
}
