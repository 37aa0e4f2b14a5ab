package tui

import (
	"context"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// mockDiagnosisService is a mock implementation of driving.DiagnosisService.
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
		Chemical:    domain.Chemical{Name: name},
		Market:      market,
		Status:      domain.StatusNotListed,
		DiagnosedAt: time.Now(),
	}, nil
}

func (m *mockDiagnosisService) History(_ context.Context, _ int) ([]domain.Diagnosis, error) {
	return m.history, m.err
}

// mockComparisonService is a mock implementation of driving.ComparisonService.
type mockComparisonService struct {
	comparison *domain.MarketComparison
	err        error
}

func (m *mockComparisonService) Compare(_ context.Context, name string, _ []domain.Market) (*domain.MarketComparison, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.comparison != nil {
		return m.comparison, nil
	}
	return &domain.MarketComparison{Chemical: domain.Chemical{Name: name}}, nil
}

func (m *mockComparisonService) DiffRevisions(_ context.Context, slug string) (*domain.RevisionDiff, error) {
	return &domain.RevisionDiff{Slug: slug}, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	return m.results, m.err
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.Source
	err     error
}

func (m *mockSourceService) Add(_ context.Context, _ domain.Source) error {
	return m.err
}

func (m *mockSourceService) Get(_ context.Context, _ string) (*domain.Source, error) {
	return nil, m.err
}

func (m *mockSourceService) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Update(_ context.Context, _ domain.Source) error {
	return m.err
}

func (m *mockSourceService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSourceService) Seed(_ context.Context) (int, error) {
	return 0, m.err
}

// mockSyncOrchestrator is a mock implementation of driving.SyncOrchestrator.
type mockSyncOrchestrator struct {
	status *driving.SyncStatus
	err    error
}

func (m *mockSyncOrchestrator) Sync(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSyncOrchestrator) SyncAll(_ context.Context) error {
	return m.err
}

func (m *mockSyncOrchestrator) Status(_ context.Context, sourceID string) (*driving.SyncStatus, error) {
	if m.status != nil {
		return m.status, m.err
	}
	return &driving.SyncStatus{SourceID: sourceID}, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get(_ context.Context) (*domain.AppSettings, error) {
	if m.settings != nil {
		return m.settings, m.err
	}
	s := domain.DefaultAppSettings()
	return &s, m.err
}

func (m *mockSettingsService) GetDiagnosisMode(_ context.Context) domain.DiagnosisMode {
	return domain.ModeOffline
}

func (m *mockSettingsService) SetDiagnosisMode(_ context.Context, _ domain.DiagnosisMode) error {
	return m.err
}

func (m *mockSettingsService) GetAIProvider(_ context.Context) domain.AIProvider {
	return domain.AIProviderOllama
}

func (m *mockSettingsService) SetAIProvider(_ context.Context, _ domain.AIProvider) error {
	return m.err
}

func (m *mockSettingsService) SetAPIKey(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) GetAPIKey(_ context.Context, _ string) string {
	return ""
}

func (m *mockSettingsService) SetLiteratureEngine(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSettingsService) Validate(_ context.Context) error {
	return m.err
}

// validPorts returns a Ports aggregate with all mocks wired.
func validPorts() *Ports {
	return &Ports{
		Diagnosis:  &mockDiagnosisService{},
		Comparison: &mockComparisonService{},
		Search:     &mockSearchService{},
		Source:     &mockSourceService{},
		Sync:       &mockSyncOrchestrator{},
		Settings:   &mockSettingsService{},
	}
}
