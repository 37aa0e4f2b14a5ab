package cli

import (
	"context"
	"errors"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// --- Mock services shared by the command tests ---

type mockDiagnosisService struct {
	diagnosis *domain.Diagnosis
	history   []domain.Diagnosis
	err       error
}

func (m *mockDiagnosisService) Diagnose(_ context.Context, name string, market domain.Market) (*domain.Diagnosis, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.diagnosis != nil {
		return m.diagnosis, nil
	}
	return &domain.Diagnosis{
		ID:          "diag-1",
		Chemical:    domain.Chemical{Name: name, CID: 23973, CASNumbers: []string{"7440-43-9"}},
		Market:      market,
		Status:      domain.StatusRestricted,
		Basis:       "REACH Annex XVII entry 23",
		DiagnosedAt: time.Now(),
	}, nil
}

func (m *mockDiagnosisService) History(_ context.Context, _ int) ([]domain.Diagnosis, error) {
	return m.history, m.err
}

type mockComparisonService struct {
	comparison *domain.MarketComparison
	diff       *domain.RevisionDiff
	err        error
}

func (m *mockComparisonService) Compare(_ context.Context, name string, markets []domain.Market) (*domain.MarketComparison, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.comparison != nil {
		return m.comparison, nil
	}
	if len(markets) == 0 {
		markets = domain.AllMarkets()
	}
	comparison := &domain.MarketComparison{
		Chemical:    domain.Chemical{Name: name},
		GeneratedAt: time.Now(),
	}
	for _, market := range markets {
		comparison.Rows = append(comparison.Rows, domain.ComparisonRow{
			Market: market,
			Status: domain.StatusNotListed,
		})
	}
	return comparison, nil
}

func (m *mockComparisonService) DiffRevisions(_ context.Context, slug string) (*domain.RevisionDiff, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.diff != nil {
		return m.diff, nil
	}
	return &domain.RevisionDiff{Slug: slug}, nil
}

type mockAlternativesService struct {
	report *domain.ResearchReport
	err    error
}

func (m *mockAlternativesService) Research(_ context.Context, name, industry string, _ int) (*domain.ResearchReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &domain.ResearchReport{
		Chemical: domain.Chemical{Name: name},
		Industry: industry,
		Alternatives: []domain.Alternative{
			{Name: "Soy protein adhesive", Rationale: "Comparable bond strength", Year: 2021},
		},
		GeneratedAt: time.Now(),
	}, nil
}

type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.results != nil {
		return m.results, nil
	}
	return []domain.SearchResult{
		{
			Section:    domain.Section{ID: "sec-1", Citation: "Article 56", Text: "No manufacturer..."},
			Slug:       "eu_reach_eurlex",
			SourceName: "REACH (EUR-Lex)",
			Score:      4.2,
			Highlights: []string{"No <b>manufacturer</b>..."},
		},
	}, nil
}

type mockSyncService struct {
	synced  []string
	syncAll bool
	err     error
}

func (m *mockSyncService) Sync(_ context.Context, sourceID string) error {
	m.synced = append(m.synced, sourceID)
	return m.err
}

func (m *mockSyncService) SyncAll(_ context.Context) error {
	m.syncAll = true
	return m.err
}

func (m *mockSyncService) Status(_ context.Context, sourceID string) (*driving.SyncStatus, error) {
	return &driving.SyncStatus{SourceID: sourceID}, nil
}

type mockSourceService struct {
	sources []domain.Source
	added   []domain.Source
	removed []string
	seeded  int
	err     error
}

func (m *mockSourceService) Add(_ context.Context, source domain.Source) error {
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, source)
	return nil
}

func (m *mockSourceService) Get(_ context.Context, id string) (*domain.Source, error) {
	for i := range m.sources {
		if m.sources[i].ID == id {
			return &m.sources[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Update(_ context.Context, _ domain.Source) error { return m.err }

func (m *mockSourceService) Remove(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, id)
	return nil
}

func (m *mockSourceService) Seed(_ context.Context) (int, error) {
	return m.seeded, m.err
}

type mockSettingsService struct {
	settings *domain.AppSettings
	mode     domain.DiagnosisMode
	err      error
}

func (m *mockSettingsService) Get(_ context.Context) (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings != nil {
		return m.settings, nil
	}
	defaults := domain.DefaultAppSettings()
	return &defaults, nil
}

func (m *mockSettingsService) GetDiagnosisMode(_ context.Context) domain.DiagnosisMode {
	return m.mode
}

func (m *mockSettingsService) SetDiagnosisMode(_ context.Context, mode domain.DiagnosisMode) error {
	if m.err != nil {
		return m.err
	}
	m.mode = mode
	return nil
}

func (m *mockSettingsService) GetAIProvider(_ context.Context) domain.AIProvider {
	return domain.AIProviderOllama
}

func (m *mockSettingsService) SetAIProvider(_ context.Context, _ domain.AIProvider) error {
	return m.err
}

func (m *mockSettingsService) SetAPIKey(_ context.Context, _, _ string) error { return m.err }
func (m *mockSettingsService) GetAPIKey(_ context.Context, _ string) string   { return "" }

func (m *mockSettingsService) SetLiteratureEngine(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSettingsService) Validate(_ context.Context) error { return m.err }

var errMockService = errors.New("mock service failure")

var _ driving.DiagnosisService = (*mockDiagnosisService)(nil)
var _ driving.ComparisonService = (*mockComparisonService)(nil)
var _ driving.AlternativesService = (*mockAlternativesService)(nil)
var _ driving.SearchService = (*mockSearchService)(nil)
var _ driving.SyncOrchestrator = (*mockSyncService)(nil)
var _ driving.SourceService = (*mockSourceService)(nil)
var _ driving.SettingsService = (*mockSettingsService)(nil)

// setupTestServices wires mock services into the package vars and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	previous := Services{
		Diagnosis:    diagnosisService,
		Comparison:   comparisonService,
		Alternatives: alternativesService,
		Search:       searchService,
		Sync:         syncOrchestrator,
		Source:       sourceService,
		Settings:     settingsService,
		Scheduler:    scheduler,
	}

	SetServices(Services{
		Diagnosis:    &mockDiagnosisService{},
		Comparison:   &mockComparisonService{},
		Alternatives: &mockAlternativesService{},
		Search:       &mockSearchService{},
		Sync:         &mockSyncService{},
		Source: &mockSourceService{sources: []domain.Source{
			{ID: "src-1", Slug: "eu_reach_eurlex", Name: "REACH (EUR-Lex)", Type: "eurlex",
				Jurisdiction: domain.MarketEU, Dataset: domain.KindRegulation, Enabled: true},
		}},
		Settings: &mockSettingsService{mode: domain.ModeOffline},
	})

	return func() { SetServices(previous) }
}
