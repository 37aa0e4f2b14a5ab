package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// Ensure RegulationStore implements the interface.
var _ driven.RegulationStore = (*RegulationStore)(nil)

// RegulationStore is an in-memory implementation of driven.RegulationStore.
type RegulationStore struct {
	mu        sync.RWMutex
	snapshots map[string]domain.Snapshot
	sections  map[string]domain.Section
	listings  map[string][]domain.Listing // keyed by source ID
}

// NewRegulationStore creates a new in-memory regulation store.
func NewRegulationStore() *RegulationStore {
	return &RegulationStore{
		snapshots: make(map[string]domain.Snapshot),
		sections:  make(map[string]domain.Section),
		listings:  make(map[string][]domain.Listing),
	}
}

// SaveSnapshot stores a snapshot.
func (s *RegulationStore) SaveSnapshot(_ context.Context, snap *domain.Snapshot) error {
	if snap == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.ID] = *snap
	return nil
}

// SaveSections stores sections for a snapshot.
func (s *RegulationStore) SaveSections(_ context.Context, sections []domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sec := range sections {
		s.sections[sec.ID] = sec
	}
	return nil
}

// SaveListings stores listings, replacing previous listings for the same source.
func (s *RegulationStore) SaveListings(_ context.Context, sourceID string, listings []domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[sourceID] = append([]domain.Listing(nil), listings...)
	return nil
}

// GetSnapshot retrieves a snapshot by ID.
func (s *RegulationStore) GetSnapshot(_ context.Context, id string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &snap, nil
}

// LatestSnapshot returns the most recent snapshot for a slug.
func (s *RegulationStore) LatestSnapshot(_ context.Context, slug string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *domain.Snapshot
	for id := range s.snapshots {
		snap := s.snapshots[id]
		if snap.Slug != slug {
			continue
		}
		if latest == nil || snap.FetchedAt.After(latest.FetchedAt) {
			latest = &snap
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

// ListSnapshots returns snapshots for a slug, most recent first.
func (s *RegulationStore) ListSnapshots(_ context.Context, slug string, limit int) ([]domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var snaps []domain.Snapshot
	for _, snap := range s.snapshots {
		if snap.Slug == slug {
			snaps = append(snaps, snap)
		}
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].FetchedAt.After(snaps[j].FetchedAt)
	})
	if limit > 0 && len(snaps) > limit {
		snaps = snaps[:limit]
	}
	return snaps, nil
}

// GetSections retrieves all sections for a snapshot, in position order.
func (s *RegulationStore) GetSections(_ context.Context, snapshotID string) ([]domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sections []domain.Section
	for _, sec := range s.sections {
		if sec.SnapshotID == snapshotID {
			sections = append(sections, sec)
		}
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})
	return sections, nil
}

// GetSection retrieves a single section by ID.
func (s *RegulationStore) GetSection(_ context.Context, id string) (*domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.sections[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sec, nil
}

// ListingsByCAS returns listings matching any of the CAS numbers within a market.
func (s *RegulationStore) ListingsByCAS(_ context.Context, cas []string, market domain.Market) ([]domain.Listing, error) {
	if len(cas) == 0 {
		return nil, nil
	}
	wanted := make(map[string]bool, len(cas))
	for _, c := range cas {
		wanted[c] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Listing
	for _, listings := range s.listings {
		for _, l := range listings {
			if wanted[l.CAS] && marketMatches(l.Jurisdiction, market) {
				result = append(result, l)
			}
		}
	}
	return result, nil
}

// ListingsByName returns listings whose chemical name matches, case-insensitively.
func (s *RegulationStore) ListingsByName(_ context.Context, name string, market domain.Market) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Listing
	for _, listings := range s.listings {
		for _, l := range listings {
			if strings.EqualFold(l.ChemicalName, name) && marketMatches(l.Jurisdiction, market) {
				result = append(result, l)
			}
		}
	}
	return result, nil
}

// DeleteBySource removes all snapshots, sections and listings for a source.
func (s *RegulationStore) DeleteBySource(_ context.Context, sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, snap := range s.snapshots {
		if snap.SourceID != sourceID {
			continue
		}
		for secID, sec := range s.sections {
			if sec.SnapshotID == id {
				delete(s.sections, secID)
			}
		}
		delete(s.snapshots, id)
	}
	delete(s.listings, sourceID)
	return nil
}

func marketMatches(jurisdiction, market domain.Market) bool {
	if market == "" || market == domain.MarketGlobal {
		return true
	}
	return jurisdiction == market
}
