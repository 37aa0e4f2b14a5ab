package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/catalogue"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// snapshotRetention bounds how many snapshots per dataset are walked
// during index cleanup.
const snapshotRetention = 100

// SourceService manages regulatory source configurations.
type SourceService struct {
	sourceStore driven.SourceStore
	syncStore   driven.SyncStateStore
	regStore    driven.RegulationStore
	searchIndex driven.SearchEngine
	factory     driven.ScraperFactory
}

// NewSourceService creates a new source service.
// searchIndex is optional; without it, Remove leaves stale index entries.
func NewSourceService(
	sourceStore driven.SourceStore,
	syncStore driven.SyncStateStore,
	regStore driven.RegulationStore,
	searchIndex driven.SearchEngine,
	factory driven.ScraperFactory,
) *SourceService {
	return &SourceService{
		sourceStore: sourceStore,
		syncStore:   syncStore,
		regStore:    regStore,
		searchIndex: searchIndex,
		factory:     factory,
	}
}

// Add creates a new source configuration. An ID is assigned when the
// caller doesn't provide one.
func (s *SourceService) Add(ctx context.Context, source domain.Source) error {
	if err := s.validate(source); err != nil {
		return err
	}
	if source.ID == "" {
		source.ID = uuid.NewString()
	}

	// Slugs identify datasets; two sources must not share one.
	existing, err := s.sourceStore.GetBySlug(ctx, source.Slug)
	if err == nil && existing != nil {
		return fmt.Errorf("%w: slug %q", domain.ErrAlreadyExists, source.Slug)
	}

	now := time.Now()
	source.CreatedAt = now
	source.UpdatedAt = now

	return s.sourceStore.Save(ctx, source)
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	return s.sourceStore.Get(ctx, id)
}

// List returns all configured sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sourceStore.List(ctx)
}

// Update modifies an existing source configuration.
func (s *SourceService) Update(ctx context.Context, source domain.Source) error {
	if source.ID == "" {
		return fmt.Errorf("%w: source ID is required", domain.ErrInvalidInput)
	}
	if err := s.validate(source); err != nil {
		return err
	}

	existing, err := s.sourceStore.Get(ctx, source.ID)
	if err != nil {
		return err
	}

	source.CreatedAt = existing.CreatedAt
	source.UpdatedAt = time.Now()

	return s.sourceStore.Save(ctx, source)
}

// Remove deletes a source along with its snapshots, listings, sync
// state and search index entries.
func (s *SourceService) Remove(ctx context.Context, id string) error {
	source, err := s.sourceStore.Get(ctx, id)
	if err != nil {
		return err
	}

	if s.searchIndex != nil {
		snapshots, err := s.regStore.ListSnapshots(ctx, source.Slug, snapshotRetention)
		if err == nil {
			for i := range snapshots {
				if delErr := s.searchIndex.DeleteSnapshot(ctx, snapshots[i].ID); delErr != nil {
					logger.Warn("remove index entries for snapshot %s: %v", snapshots[i].ID, delErr)
				}
			}
		}
	}

	if err := s.regStore.DeleteBySource(ctx, id); err != nil {
		return fmt.Errorf("delete source data: %w", err)
	}
	if err := s.syncStore.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("delete sync state for %s: %v", id, err)
	}

	return s.sourceStore.Delete(ctx, id)
}

// Seed installs the built-in source catalogue, skipping slugs that
// already exist. Returns the number of sources added.
func (s *SourceService) Seed(ctx context.Context) (int, error) {
	sources, err := catalogue.Sources()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, source := range sources {
		existing, err := s.sourceStore.GetBySlug(ctx, source.Slug)
		if err == nil && existing != nil {
			continue
		}

		source.ID = uuid.NewString()
		now := time.Now()
		source.CreatedAt = now
		source.UpdatedAt = now

		if err := s.sourceStore.Save(ctx, source); err != nil {
			return added, fmt.Errorf("seed %q: %w", source.Slug, err)
		}
		added++
	}

	return added, nil
}

// validate checks the fields a source needs before it can sync.
func (s *SourceService) validate(source domain.Source) error {
	if source.Slug == "" {
		return fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}
	if source.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !source.Jurisdiction.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrMarketUnsupported, source.Jurisdiction)
	}
	if !source.Dataset.IsValid() {
		return fmt.Errorf("%w: unknown dataset kind %q", domain.ErrInvalidInput, source.Dataset)
	}

	if s.factory != nil {
		supported := false
		for _, t := range s.factory.SupportedTypes() {
			if t == source.Type {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedType, source.Type)
		}
	}

	return nil
}
