package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// --- Mock services ---

type mockDiagnosisService struct {
	diagnosis *domain.Diagnosis
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
		Chemical:    domain.Chemical{Name: name, CASNumbers: []string{"7440-43-9"}},
		Market:      market,
		Status:      domain.StatusRestricted,
		Basis:       "REACH Annex XVII entry 23",
		DiagnosedAt: time.Now(),
	}, nil
}

func (m *mockDiagnosisService) History(_ context.Context, _ int) ([]domain.Diagnosis, error) {
	return nil, nil
}

type mockComparisonService struct {
	err error
}

func (m *mockComparisonService) Compare(_ context.Context, name string, markets []domain.Market) (*domain.MarketComparison, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(markets) == 0 {
		markets = domain.AllMarkets()
	}
	comparison := &domain.MarketComparison{Chemical: domain.Chemical{Name: name}}
	for _, market := range markets {
		comparison.Rows = append(comparison.Rows, domain.ComparisonRow{Market: market, Status: domain.StatusNotListed})
	}
	return comparison, nil
}

func (m *mockComparisonService) DiffRevisions(_ context.Context, slug string) (*domain.RevisionDiff, error) {
	return &domain.RevisionDiff{Slug: slug}, m.err
}

type mockAlternativesService struct {
	err error
}

func (m *mockAlternativesService) Research(_ context.Context, name, industry string, _ int) (*domain.ResearchReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ResearchReport{
		Chemical:     domain.Chemical{Name: name},
		Industry:     industry,
		Alternatives: []domain.Alternative{{Name: "Soy protein adhesive"}},
	}, nil
}

type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	return m.results, m.err
}

// --- Fixtures ---

func newTestServer() *Server {
	return NewServer(&Ports{
		Diagnosis:    &mockDiagnosisService{},
		Comparison:   &mockComparisonService{},
		Alternatives: &mockAlternativesService{},
		Search: &mockSearchService{results: []domain.SearchResult{
			{Section: domain.Section{ID: "sec-1", Citation: "Article 56"}, Slug: "eu_reach_eurlex", Score: 4.2},
		}},
	})
}

func doJSON(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestHealthz(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestDiagnose(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/diagnose",
		`{"target": "cadmium", "market": "EU"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp diagnoseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Diagnosis)
	assert.Equal(t, domain.StatusRestricted, resp.Diagnosis.Status)
	assert.Equal(t, "REACH Annex XVII entry 23", resp.Diagnosis.Basis)
}

func TestDiagnose_DefaultsToEU(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/diagnose", `{"target": "cadmium"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp diagnoseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.MarketEU, resp.Diagnosis.Market)
}

func TestDiagnose_WithSideSearch(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/diagnose",
		`{"target": "cadmium", "market": "EU", "query": "annex xvii"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp diagnoseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Search, 1)
	assert.Equal(t, "eu_reach_eurlex", resp.Search[0].Slug)
}

func TestDiagnose_MissingTarget(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/diagnose", `{"market": "EU"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "target is required")
}

func TestDiagnose_MalformedBody(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/diagnose", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDiagnose_UnsupportedMarket(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/diagnose",
		`{"target": "cadmium", "market": "MOON"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MOON")
}

func TestDiagnose_GlobalRejected(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/diagnose",
		`{"target": "cadmium", "market": "GLOBAL"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "/compare")
}

func TestDiagnose_ErrorBodyEmbedsStatusCode(t *testing.T) {
	server := NewServer(&Ports{
		Diagnosis: &mockDiagnosisService{err: domain.ErrInvalidInput},
	})

	rec := doJSON(t, server, http.MethodPost, "/diagnose", `{"target": "  "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.NotEmpty(t, body.Error)
}

func TestDiagnose_ServiceUnavailable(t *testing.T) {
	server := NewServer(&Ports{})

	rec := doJSON(t, server, http.MethodPost, "/diagnose", `{"target": "cadmium"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCompare(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/compare", `{"target": "cadmium"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var comparison domain.MarketComparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comparison))
	assert.Len(t, comparison.Rows, len(domain.AllMarkets()))
}

func TestCompare_ExplicitMarkets(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/compare",
		`{"target": "cadmium", "markets": ["EU", "US"]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var comparison domain.MarketComparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comparison))
	assert.Len(t, comparison.Rows, 2)
}

func TestAlternatives(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/alternatives",
		`{"target": "formaldehyde", "industry": "wood adhesives"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.ResearchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "wood adhesives", report.Industry)
	require.Len(t, report.Alternatives, 1)
}

func TestAlternatives_LLMUnavailable(t *testing.T) {
	server := NewServer(&Ports{
		Alternatives: &mockAlternativesService{err: domain.ErrLLMUnavailable},
	})

	rec := doJSON(t, server, http.MethodPost, "/alternatives", `{"target": "formaldehyde"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearch(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/search?q=cadmium", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var results []domain.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Article 56", results[0].Section.Citation)
}

func TestSearch_MissingQuery(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/search", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrMarketUnsupported))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(domain.ErrLLMUnavailable))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
