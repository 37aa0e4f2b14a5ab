package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
)

// Ensure ComparisonService implements the interface.
var _ driving.ComparisonService = (*ComparisonService)(nil)

// summaryMaxLength caps the LLM narrative attached to a comparison.
const summaryMaxLength = 600

// ComparisonService builds cross-jurisdiction compliance reports by
// running a diagnosis per market, and diffs dataset revisions.
type ComparisonService struct {
	diagnosis driving.DiagnosisService
	regStore  driven.RegulationStore
	llm       driven.LLMService
}

// NewComparisonService creates a comparison service.
// llm is optional; without it reports carry no narrative summary.
func NewComparisonService(
	diagnosis driving.DiagnosisService,
	regStore driven.RegulationStore,
	llm driven.LLMService,
) *ComparisonService {
	return &ComparisonService{
		diagnosis: diagnosis,
		regStore:  regStore,
		llm:       llm,
	}
}

// Compare diagnoses a chemical across the given markets and assembles a
// comparison report. A nil or empty market list compares all jurisdictions.
func (s *ComparisonService) Compare(ctx context.Context, chemicalName string, markets []domain.Market) (*domain.MarketComparison, error) {
	if len(markets) == 0 {
		markets = domain.AllMarkets()
	}

	// GLOBAL in the list expands to every concrete jurisdiction.
	expanded := make([]domain.Market, 0, len(markets))
	seen := make(map[domain.Market]bool)
	for _, market := range markets {
		if !market.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrMarketUnsupported, market)
		}
		for _, m := range market.Expand() {
			if !seen[m] {
				seen[m] = true
				expanded = append(expanded, m)
			}
		}
	}

	comparison := &domain.MarketComparison{
		Rows:        make([]domain.ComparisonRow, 0, len(expanded)),
		GeneratedAt: time.Now(),
	}

	for _, market := range expanded {
		diag, err := s.diagnosis.Diagnose(ctx, chemicalName, market)
		if err != nil {
			return nil, fmt.Errorf("diagnose %s in %s: %w", chemicalName, market, err)
		}

		// Every per-market diagnosis resolves the same chemical; keep the
		// first resolved identity for the report header.
		if !comparison.Chemical.Resolved() {
			comparison.Chemical = diag.Chemical
		}

		comparison.Rows = append(comparison.Rows, domain.ComparisonRow{
			Market:       market,
			Status:       diag.Status,
			Basis:        diag.Basis,
			ListingCount: len(diag.Evidence),
		})
	}

	if s.llm != nil {
		summary, err := s.summarise(ctx, chemicalName, comparison)
		if err != nil {
			logger.Warn("comparison summary: %v", err)
		} else {
			comparison.Summary = summary
		}
	}

	return comparison, nil
}

// DiffRevisions compares the two most recent snapshots of a dataset.
func (s *ComparisonService) DiffRevisions(ctx context.Context, slug string) (*domain.RevisionDiff, error) {
	snapshots, err := s.regStore.ListSnapshots(ctx, slug, 2)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	if len(snapshots) < 2 {
		return nil, fmt.Errorf("%w: dataset %q has fewer than two snapshots", domain.ErrNotFound, slug)
	}

	// ListSnapshots returns most recent first.
	newer, older := snapshots[0], snapshots[1]

	diff := &domain.RevisionDiff{
		Slug:         slug,
		OldSHA256:    older.SHA256,
		NewSHA256:    newer.SHA256,
		OldFetchedAt: older.FetchedAt,
		NewFetchedAt: newer.FetchedAt,
		Changed:      older.SHA256 != newer.SHA256,
	}

	if diff.Changed {
		dmp := diffmatchpatch.New()
		patches := dmp.PatchMake(older.Content, newer.Content)
		diff.Unified = dmp.PatchToText(patches)
	}

	return diff, nil
}

// summarise asks the LLM for a short narrative of the comparison rows.
func (s *ComparisonService) summarise(ctx context.Context, chemicalName string, comparison *domain.MarketComparison) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Regulatory status of %s by jurisdiction:\n", chemicalName)
	for _, row := range comparison.Rows {
		fmt.Fprintf(&sb, "- %s: %s", row.Market.Description(), row.Status)
		if row.Basis != "" {
			fmt.Fprintf(&sb, " (%s)", row.Basis)
		}
		fmt.Fprintf(&sb, ", %d listing(s)\n", row.ListingCount)
	}
	return s.llm.Summarise(ctx, sb.String(), summaryMaxLength)
}
