package mcp

import (
	"context"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
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

// mockAlternativesService is a mock implementation of driving.AlternativesService.
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
	}, nil
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
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
