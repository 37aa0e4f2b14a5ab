package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/storage/memory"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// mockDiagnosisService implements driving.DiagnosisService for testing.
type mockDiagnosisService struct {
	byMarket map[domain.Market]*domain.Diagnosis
	err      error
	calls    []domain.Market
}

func (m *mockDiagnosisService) Diagnose(_ context.Context, name string, market domain.Market) (*domain.Diagnosis, error) {
	m.calls = append(m.calls, market)
	if m.err != nil {
		return nil, m.err
	}
	if diag, ok := m.byMarket[market]; ok {
		return diag, nil
	}
	return &domain.Diagnosis{
		Chemical: domain.Chemical{Name: name},
		Market:   market,
		Status:   domain.StatusNotListed,
	}, nil
}

func (m *mockDiagnosisService) History(_ context.Context, _ int) ([]domain.Diagnosis, error) {
	return nil, nil
}

var _ driving.DiagnosisService = (*mockDiagnosisService)(nil)

// --- ComparisonService Tests ---

func TestCompare(t *testing.T) {
	resolved := domain.Chemical{
		Name: "cadmium", CID: 23973, CASNumbers: []string{"7440-43-9"},
		ResolvedAt: time.Now(),
	}
	diagnosis := &mockDiagnosisService{byMarket: map[domain.Market]*domain.Diagnosis{
		domain.MarketEU: {
			Chemical: resolved, Market: domain.MarketEU,
			Status: domain.StatusRestricted, Basis: "REACH Annex XVII entry 23",
			Evidence: []domain.Listing{{ID: "l-1"}},
		},
		domain.MarketTW: {
			Chemical: resolved, Market: domain.MarketTW,
			Status: domain.StatusListed, Basis: "TCSCA Inventory",
			Evidence: []domain.Listing{{ID: "l-2"}},
		},
		domain.MarketUS: {
			Chemical: resolved, Market: domain.MarketUS,
			Status: domain.StatusNotListed,
		},
	}}

	svc := NewComparisonService(diagnosis, memory.NewRegulationStore(), nil)

	comparison, err := svc.Compare(context.Background(), "cadmium", nil)
	require.NoError(t, err)

	require.Len(t, comparison.Rows, len(domain.AllMarkets()))
	assert.Equal(t, "cadmium", comparison.Chemical.Name)
	assert.True(t, comparison.Chemical.Resolved())
	assert.Empty(t, comparison.Summary, "no LLM, no narrative")

	strictest := comparison.Strictest()
	require.NotNil(t, strictest)
	assert.Equal(t, domain.MarketEU, strictest.Market)
	assert.Equal(t, domain.StatusRestricted, strictest.Status)
}

func TestCompare_GlobalExpands(t *testing.T) {
	diagnosis := &mockDiagnosisService{}
	svc := NewComparisonService(diagnosis, memory.NewRegulationStore(), nil)

	comparison, err := svc.Compare(context.Background(), "ethanol", []domain.Market{domain.MarketGlobal})
	require.NoError(t, err)

	assert.Len(t, comparison.Rows, len(domain.AllMarkets()))
	assert.NotContains(t, diagnosis.calls, domain.MarketGlobal)
}

func TestCompare_DeduplicatesMarkets(t *testing.T) {
	diagnosis := &mockDiagnosisService{}
	svc := NewComparisonService(diagnosis, memory.NewRegulationStore(), nil)

	comparison, err := svc.Compare(context.Background(), "ethanol", []domain.Market{
		domain.MarketEU, domain.MarketEU, domain.MarketGlobal,
	})
	require.NoError(t, err)

	assert.Len(t, comparison.Rows, len(domain.AllMarkets()))
}

func TestCompare_InvalidMarket(t *testing.T) {
	svc := NewComparisonService(&mockDiagnosisService{}, memory.NewRegulationStore(), nil)

	_, err := svc.Compare(context.Background(), "ethanol", []domain.Market{"MOON"})
	assert.ErrorIs(t, err, domain.ErrMarketUnsupported)
}

func TestCompare_DiagnosisError(t *testing.T) {
	diagnosis := &mockDiagnosisService{err: errors.New("store closed")}
	svc := NewComparisonService(diagnosis, memory.NewRegulationStore(), nil)

	_, err := svc.Compare(context.Background(), "ethanol", []domain.Market{domain.MarketEU})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store closed")
}

func TestCompare_LLMSummary(t *testing.T) {
	llm := &mockLLMService{summaryOut: "Cadmium is restricted in the EU and listed in Taiwan."}
	svc := NewComparisonService(&mockDiagnosisService{}, memory.NewRegulationStore(), llm)

	comparison, err := svc.Compare(context.Background(), "cadmium", []domain.Market{domain.MarketEU})
	require.NoError(t, err)
	assert.Equal(t, "Cadmium is restricted in the EU and listed in Taiwan.", comparison.Summary)
}

func TestCompare_LLMSummaryFailureTolerated(t *testing.T) {
	llm := &mockLLMService{summaryErr: errors.New("model not loaded")}
	svc := NewComparisonService(&mockDiagnosisService{}, memory.NewRegulationStore(), llm)

	comparison, err := svc.Compare(context.Background(), "cadmium", []domain.Market{domain.MarketEU})
	require.NoError(t, err)
	assert.Empty(t, comparison.Summary)
}

// --- DiffRevisions Tests ---

func TestDiffRevisions(t *testing.T) {
	regStore := memory.NewRegulationStore()
	svc := NewComparisonService(&mockDiagnosisService{}, regStore, nil)
	ctx := context.Background()

	older := &domain.Snapshot{
		ID: "snap-1", Slug: "eu_reach_eurlex", SHA256: "aaa",
		Content:   "Entry 23: Cadmium shall not be used.",
		FetchedAt: time.Now().Add(-24 * time.Hour),
	}
	newer := &domain.Snapshot{
		ID: "snap-2", Slug: "eu_reach_eurlex", SHA256: "bbb",
		Content:   "Entry 23: Cadmium and its compounds shall not be used.",
		FetchedAt: time.Now(),
	}
	require.NoError(t, regStore.SaveSnapshot(ctx, older))
	require.NoError(t, regStore.SaveSnapshot(ctx, newer))

	diff, err := svc.DiffRevisions(ctx, "eu_reach_eurlex")
	require.NoError(t, err)

	assert.Equal(t, "aaa", diff.OldSHA256)
	assert.Equal(t, "bbb", diff.NewSHA256)
	assert.True(t, diff.Changed)
	assert.NotEmpty(t, diff.Unified)
}

func TestDiffRevisions_Unchanged(t *testing.T) {
	regStore := memory.NewRegulationStore()
	svc := NewComparisonService(&mockDiagnosisService{}, regStore, nil)
	ctx := context.Background()

	for i, id := range []string{"snap-1", "snap-2"} {
		require.NoError(t, regStore.SaveSnapshot(ctx, &domain.Snapshot{
			ID: id, Slug: "us_tsca_inventory", SHA256: "same",
			Content:   "identical",
			FetchedAt: time.Now().Add(time.Duration(i) * time.Hour),
		}))
	}

	diff, err := svc.DiffRevisions(ctx, "us_tsca_inventory")
	require.NoError(t, err)

	assert.False(t, diff.Changed)
	assert.Empty(t, diff.Unified)
}

func TestDiffRevisions_TooFewSnapshots(t *testing.T) {
	regStore := memory.NewRegulationStore()
	svc := NewComparisonService(&mockDiagnosisService{}, regStore, nil)
	ctx := context.Background()

	_, err := svc.DiffRevisions(ctx, "empty_slug")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, regStore.SaveSnapshot(ctx, &domain.Snapshot{
		ID: "snap-1", Slug: "one_snap", SHA256: "aaa",
	}))
	_, err = svc.DiffRevisions(ctx, "one_snap")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
