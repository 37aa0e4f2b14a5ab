package driven

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// SourceStore persists source configurations.
type SourceStore interface {
	// Save stores or updates a source.
	Save(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// GetBySlug retrieves a source by dataset slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Source, error)

	// Delete removes a source.
	Delete(ctx context.Context, id string) error

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.Source, error)
}

// SyncStateStore persists sync progress.
type SyncStateStore interface {
	// Save stores or updates sync state.
	Save(ctx context.Context, state domain.SyncState) error

	// Get retrieves sync state for a source.
	Get(ctx context.Context, sourceID string) (*domain.SyncState, error)

	// Delete removes sync state for a source.
	Delete(ctx context.Context, sourceID string) error
}

// RegulationStore persists snapshots, sections and listings.
// Backed by SQLite.
type RegulationStore interface {
	// SaveSnapshot stores a snapshot.
	SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error

	// SaveSections stores sections for a snapshot.
	SaveSections(ctx context.Context, sections []domain.Section) error

	// SaveListings stores listings, replacing previous listings for the
	// same source.
	SaveListings(ctx context.Context, sourceID string, listings []domain.Listing) error

	// GetSnapshot retrieves a snapshot by ID.
	GetSnapshot(ctx context.Context, id string) (*domain.Snapshot, error)

	// LatestSnapshot returns the most recent snapshot for a slug.
	LatestSnapshot(ctx context.Context, slug string) (*domain.Snapshot, error)

	// ListSnapshots returns snapshots for a slug, most recent first.
	ListSnapshots(ctx context.Context, slug string, limit int) ([]domain.Snapshot, error)

	// GetSections retrieves all sections for a snapshot, in position order.
	GetSections(ctx context.Context, snapshotID string) ([]domain.Section, error)

	// GetSection retrieves a single section by ID.
	GetSection(ctx context.Context, id string) (*domain.Section, error)

	// ListingsByCAS returns listings matching any of the CAS numbers
	// within a market. MarketGlobal matches all jurisdictions.
	ListingsByCAS(ctx context.Context, cas []string, market domain.Market) ([]domain.Listing, error)

	// ListingsByName returns listings whose chemical name matches,
	// case-insensitively, within a market.
	ListingsByName(ctx context.Context, name string, market domain.Market) ([]domain.Listing, error)

	// DeleteBySource removes all snapshots, sections and listings
	// produced by a source.
	DeleteBySource(ctx context.Context, sourceID string) error
}

// ChemicalStore caches resolved chemical identities.
type ChemicalStore interface {
	// Save stores or updates a resolved chemical.
	Save(ctx context.Context, chem domain.Chemical) error

	// GetByName retrieves a cached chemical by name, case-insensitively.
	GetByName(ctx context.Context, name string) (*domain.Chemical, error)
}

// DiagnosisStore persists diagnosis history.
type DiagnosisStore interface {
	// Save stores a completed diagnosis.
	Save(ctx context.Context, diag *domain.Diagnosis) error

	// History returns recent diagnoses, most recent first.
	History(ctx context.Context, limit int) ([]domain.Diagnosis, error)
}

// SchedulerStore persists scheduler state for crash recovery.
// It stores task state and execution history.
type SchedulerStore interface {
	// GetTask retrieves a scheduled task by ID.
	// Returns nil and no error if the task does not exist.
	GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error)

	// ListTasks returns all scheduled tasks.
	ListTasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// SaveTask persists a task's state.
	// Creates or updates the task based on ID.
	SaveTask(ctx context.Context, task *domain.ScheduledTask) error

	// DeleteTask removes a task from storage.
	DeleteTask(ctx context.Context, taskID string) error

	// RecordResult logs a task execution result.
	RecordResult(ctx context.Context, result *domain.TaskResult) error

	// GetTaskHistory returns recent results for a task.
	// Results are ordered by start time descending (most recent first).
	GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error)

	// PruneHistory removes old task results beyond the retention limit.
	// Keeps the most recent 'keep' results per task.
	PruneHistory(ctx context.Context, keep int) error
}
