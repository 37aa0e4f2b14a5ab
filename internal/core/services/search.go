package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// defaultSearchLimit is used when callers don't specify one.
const defaultSearchLimit = 20

// SearchService provides keyword search over indexed regulation sections,
// with optional LLM query expansion.
type SearchService struct {
	regStore    driven.RegulationStore
	sourceStore driven.SourceStore
	searchIndex driven.SearchEngine
	llmService  driven.LLMService
}

// NewSearchService creates a new search service.
// llmService is optional; without it, Rewrite requests fall back to the
// original query.
func NewSearchService(
	regStore driven.RegulationStore,
	sourceStore driven.SourceStore,
	searchIndex driven.SearchEngine,
	llmService driven.LLMService,
) *SearchService {
	return &SearchService{
		regStore:    regStore,
		sourceStore: sourceStore,
		searchIndex: searchIndex,
		llmService:  llmService,
	}
}

// Search performs keyword search across all indexed sections.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	if s.searchIndex == nil {
		return nil, domain.ErrSearchUnavailable
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	// Request more results internally to account for filtering.
	internalLimit := limit + opts.Offset
	if len(opts.Slugs) > 0 || opts.Market != "" {
		internalLimit *= 3
	}

	if opts.Rewrite && s.llmService != nil {
		expanded, err := s.llmService.RewriteQuery(ctx, query)
		if err == nil && expanded != "" {
			logger.Info("Query rewrite: %q -> %q", query, expanded)
			query = expanded
		} else if err != nil {
			logger.Warn("Query rewrite failed: %v (using original query)", err)
		}
	}

	hits, err := s.searchIndex.Search(ctx, query, internalLimit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Raw results: %d hits", len(hits))

	results, err := s.hydrateResults(ctx, hits, opts)
	if err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}

	results = applyPagination(results, opts.Offset, limit)
	logger.Debug("Final results: %d", len(results))

	return results, nil
}

// hydrateResults converts engine hits into full SearchResult objects,
// applying dataset and market filters along the way.
func (s *SearchService) hydrateResults(
	ctx context.Context, hits []driven.SearchHit, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	slugFilter := make(map[string]bool, len(opts.Slugs))
	for _, slug := range opts.Slugs {
		slugFilter[slug] = true
	}

	results := make([]domain.SearchResult, 0, len(hits))

	for _, hit := range hits {
		section, err := s.regStore.GetSection(ctx, hit.SectionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Section was deleted since indexing, skip it
				continue
			}
			return nil, fmt.Errorf("get section %s: %w", hit.SectionID, err)
		}

		snapshot, err := s.regStore.GetSnapshot(ctx, section.SnapshotID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get snapshot %s: %w", section.SnapshotID, err)
		}

		if len(slugFilter) > 0 && !slugFilter[snapshot.Slug] {
			continue
		}

		sourceName := ""
		if s.sourceStore != nil {
			source, err := s.sourceStore.Get(ctx, snapshot.SourceID)
			if err == nil && source != nil {
				if opts.Market != "" && opts.Market != domain.MarketGlobal &&
					source.Jurisdiction != opts.Market {
					continue
				}
				sourceName = source.Name
			}
		}

		highlights := hit.Snippet
		result := domain.SearchResult{
			Section:    *section,
			Slug:       snapshot.Slug,
			SourceName: sourceName,
			Score:      hit.Score,
		}
		if highlights != "" {
			result.Highlights = []string{highlights}
		}
		results = append(results, result)
	}

	return results, nil
}

// applyPagination applies offset and limit to results.
func applyPagination(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset >= len(results) {
		return []domain.SearchResult{}
	}

	end := offset + limit
	if end > len(results) {
		end = len(results)
	}

	return results[offset:end]
}
