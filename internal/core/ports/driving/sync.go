package driving

import "context"

// SyncOrchestrator coordinates regulatory data synchronisation from sources.
type SyncOrchestrator interface {
	// Sync triggers synchronisation for a source.
	Sync(ctx context.Context, sourceID string) error

	// SyncAll triggers synchronisation for all enabled sources.
	SyncAll(ctx context.Context) error

	// Status returns sync status for a source.
	Status(ctx context.Context, sourceID string) (*SyncStatus, error)
}

// SyncStatus represents the current state of a sync operation.
type SyncStatus struct {
	// SourceID identifies the source.
	SourceID string

	// Running indicates if sync is currently in progress.
	Running bool

	// SnapshotsProcessed is the count of snapshots processed.
	SnapshotsProcessed int

	// ListingsSaved is the count of listings persisted.
	ListingsSaved int

	// ErrorCount is the number of errors encountered.
	ErrorCount int

	// Unchanged indicates the fetch produced content identical to the
	// previous sync (nothing was re-stored).
	Unchanged bool
}
