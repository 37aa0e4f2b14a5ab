package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/adapters/driven/storage/memory"
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSearchEngine implements driven.SearchEngine for testing.
type mockSearchEngine struct {
	hits       []driven.SearchHit
	searchErr  error
	indexErr   error
	deleteErr  error
	lastQuery  string
	lastLimit  int
	indexed    []domain.Section
	deletedIDs []string
}

func (m *mockSearchEngine) Index(_ context.Context, section domain.Section) error {
	if m.indexErr != nil {
		return m.indexErr
	}
	m.indexed = append(m.indexed, section)
	return nil
}

func (m *mockSearchEngine) Delete(_ context.Context, sectionID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, sectionID)
	return nil
}

func (m *mockSearchEngine) DeleteSnapshot(_ context.Context, snapshotID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, snapshotID)
	return nil
}

func (m *mockSearchEngine) Search(_ context.Context, query string, limit int) ([]driven.SearchHit, error) {
	m.lastQuery = query
	m.lastLimit = limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.hits, nil
}

func (m *mockSearchEngine) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing. Shared by the
// search, comparison and alternatives tests.
type mockLLMService struct {
	generateOut string
	generateErr error
	chatOut     string
	chatErr     error
	rewriteOut  string
	rewriteErr  error
	summaryOut  string
	summaryErr  error

	chatMessages []driven.ChatMessage
	lastPrompt   string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.lastPrompt = prompt
	return m.generateOut, m.generateErr
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.chatMessages = messages
	return m.chatOut, m.chatErr
}

func (m *mockLLMService) RewriteQuery(_ context.Context, query string) (string, error) {
	if m.rewriteErr != nil {
		return "", m.rewriteErr
	}
	if m.rewriteOut != "" {
		return m.rewriteOut, nil
	}
	return query, nil
}

func (m *mockLLMService) Summarise(_ context.Context, _ string, _ int) (string, error) {
	return m.summaryOut, m.summaryErr
}

func (m *mockLLMService) ModelName() string            { return "mock-model" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

var _ driven.SearchEngine = (*mockSearchEngine)(nil)
var _ driven.LLMService = (*mockLLMService)(nil)

// --- Fixtures ---

// seedSearchData stores a source, snapshot and two sections and returns
// the stores.
func seedSearchData(t *testing.T) (*memory.RegulationStore, *memory.SourceStore) {
	t.Helper()
	ctx := context.Background()

	regStore := memory.NewRegulationStore()
	sourceStore := memory.NewSourceStore()

	require.NoError(t, sourceStore.Save(ctx, domain.Source{
		ID:           "src-eu",
		Slug:         "eu_reach_eurlex",
		Name:         "REACH (EUR-Lex)",
		Jurisdiction: domain.MarketEU,
	}))
	require.NoError(t, regStore.SaveSnapshot(ctx, &domain.Snapshot{
		ID: "snap-1", SourceID: "src-eu", Slug: "eu_reach_eurlex", SHA256: "aa",
	}))
	require.NoError(t, regStore.SaveSections(ctx, []domain.Section{
		{
			ID:         "sec-1",
			SnapshotID: "snap-1",
			Citation:   "Article 56",
			Heading:    "Authorisation requirement",
			Text:       "No manufacturer shall place a substance listed in Annex XIV on the market for a use...",
			Position:   1,
		},
		{
			ID:         "sec-2",
			SnapshotID: "snap-1",
			Citation:   "Annex XVII entry 23",
			Heading:    "Cadmium",
			Text:       "Shall not be used in mixtures and articles produced from synthetic organic polymers...",
			Position:   2,
		},
	}))

	return regStore, sourceStore
}

// --- SearchService Tests ---

func TestSearch(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	engine := &mockSearchEngine{hits: []driven.SearchHit{
		{SectionID: "sec-2", Score: 4.2, Snippet: "...<b>Cadmium</b>..."},
		{SectionID: "sec-1", Score: 1.1},
	}}

	svc := NewSearchService(regStore, sourceStore, engine, nil)

	results, err := svc.Search(context.Background(), "cadmium", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "sec-2", results[0].Section.ID)
	assert.Equal(t, "eu_reach_eurlex", results[0].Slug)
	assert.Equal(t, "REACH (EUR-Lex)", results[0].SourceName)
	assert.InDelta(t, 4.2, results[0].Score, 0.001)
	require.Len(t, results[0].Highlights, 1)
	assert.Contains(t, results[0].Highlights[0], "Cadmium")

	assert.Empty(t, results[1].Highlights, "no snippet, no highlight")
}

func TestSearch_EmptyQuery(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	svc := NewSearchService(regStore, sourceStore, &mockSearchEngine{}, nil)

	results, err := svc.Search(context.Background(), "   ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_NoEngine(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	svc := NewSearchService(regStore, sourceStore, nil, nil)

	_, err := svc.Search(context.Background(), "cadmium", domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
}

func TestSearch_EngineError(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	engine := &mockSearchEngine{searchErr: errors.New("fts: disk I/O error")}
	svc := NewSearchService(regStore, sourceStore, engine, nil)

	_, err := svc.Search(context.Background(), "cadmium", domain.SearchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestSearch_SlugFilter(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	ctx := context.Background()

	// A second dataset that also matches.
	require.NoError(t, sourceStore.Save(ctx, domain.Source{
		ID: "src-us", Slug: "us_tsca_inventory", Name: "TSCA Inventory",
		Jurisdiction: domain.MarketUS,
	}))
	require.NoError(t, regStore.SaveSnapshot(ctx, &domain.Snapshot{
		ID: "snap-us", SourceID: "src-us", Slug: "us_tsca_inventory", SHA256: "bb",
	}))
	require.NoError(t, regStore.SaveSections(ctx, []domain.Section{
		{ID: "sec-us", SnapshotID: "snap-us", Text: "Cadmium compounds", Position: 1},
	}))

	engine := &mockSearchEngine{hits: []driven.SearchHit{
		{SectionID: "sec-2", Score: 2.0},
		{SectionID: "sec-us", Score: 1.5},
	}}
	svc := NewSearchService(regStore, sourceStore, engine, nil)

	results, err := svc.Search(ctx, "cadmium", domain.SearchOptions{
		Slugs: []string{"us_tsca_inventory"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sec-us", results[0].Section.ID)
}

func TestSearch_MarketFilter(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	engine := &mockSearchEngine{hits: []driven.SearchHit{
		{SectionID: "sec-1", Score: 1.0},
	}}
	svc := NewSearchService(regStore, sourceStore, engine, nil)

	results, err := svc.Search(context.Background(), "authorisation", domain.SearchOptions{
		Market: domain.MarketTW,
	})
	require.NoError(t, err)
	assert.Empty(t, results, "EU sections filtered out for a TW query")

	// The global market matches everything.
	results, err = svc.Search(context.Background(), "authorisation", domain.SearchOptions{
		Market: domain.MarketGlobal,
	})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_SkipsOrphanedHits(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	engine := &mockSearchEngine{hits: []driven.SearchHit{
		{SectionID: "sec-gone", Score: 9.0},
		{SectionID: "sec-1", Score: 1.0},
	}}
	svc := NewSearchService(regStore, sourceStore, engine, nil)

	results, err := svc.Search(context.Background(), "cadmium", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sec-1", results[0].Section.ID)
}

func TestSearch_Rewrite(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	engine := &mockSearchEngine{}
	llm := &mockLLMService{rewriteOut: "cadmium Cd 7440-43-9 pigments"}
	svc := NewSearchService(regStore, sourceStore, engine, llm)

	_, err := svc.Search(context.Background(), "cadmium", domain.SearchOptions{Rewrite: true})
	require.NoError(t, err)
	assert.Equal(t, "cadmium Cd 7440-43-9 pigments", engine.lastQuery)
}

func TestSearch_RewriteFailureFallsBack(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	engine := &mockSearchEngine{}
	llm := &mockLLMService{rewriteErr: errors.New("model not loaded")}
	svc := NewSearchService(regStore, sourceStore, engine, llm)

	_, err := svc.Search(context.Background(), "cadmium", domain.SearchOptions{Rewrite: true})
	require.NoError(t, err)
	assert.Equal(t, "cadmium", engine.lastQuery)
}

func TestSearch_Pagination(t *testing.T) {
	regStore, sourceStore := seedSearchData(t)
	engine := &mockSearchEngine{hits: []driven.SearchHit{
		{SectionID: "sec-1", Score: 2.0},
		{SectionID: "sec-2", Score: 1.0},
	}}
	svc := NewSearchService(regStore, sourceStore, engine, nil)

	results, err := svc.Search(context.Background(), "cadmium", domain.SearchOptions{
		Limit: 1, Offset: 1,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sec-2", results[0].Section.ID)
}

func TestApplyPagination(t *testing.T) {
	results := []domain.SearchResult{
		{Slug: "a"}, {Slug: "b"}, {Slug: "c"},
	}

	assert.Len(t, applyPagination(results, 0, 2), 2)
	assert.Len(t, applyPagination(results, 2, 2), 1)
	assert.Empty(t, applyPagination(results, 3, 2))
	assert.Empty(t, applyPagination(nil, 0, 10))
}
