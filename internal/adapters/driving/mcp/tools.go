package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// DiagnoseInput is the input schema for the diagnose_chemical tool.
type DiagnoseInput struct {
	Chemical string `json:"chemical" jsonschema:"the chemical name to diagnose"`
	Market   string `json:"market,omitempty" jsonschema:"the market to diagnose against: EU, TW or US (default EU)"`
}

// DiagnoseOutput is the output schema for the diagnose_chemical tool.
type DiagnoseOutput struct {
	Chemical string   `json:"chemical"`
	CAS      []string `json:"cas,omitempty"`
	Market   string   `json:"market"`
	Status   string   `json:"status"`
	Basis    string   `json:"basis,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Evidence []string `json:"evidence,omitempty"`
}

// CompareInput is the input schema for the compare_markets tool.
type CompareInput struct {
	Chemical string   `json:"chemical" jsonschema:"the chemical name to compare"`
	Markets  []string `json:"markets,omitempty" jsonschema:"markets to compare: EU, TW, US (default all)"`
}

// CompareOutput is the output schema for the compare_markets tool.
type CompareOutput struct {
	Chemical  string             `json:"chemical"`
	CAS       []string           `json:"cas,omitempty"`
	Rows      []CompareRowOutput `json:"rows"`
	Strictest string             `json:"strictest,omitempty"`
	Summary   string             `json:"summary,omitempty"`
}

// CompareRowOutput is a per-market comparison line.
type CompareRowOutput struct {
	Market string `json:"market"`
	Status string `json:"status"`
	Basis  string `json:"basis,omitempty"`
}

// AlternativesInput is the input schema for the find_alternatives tool.
type AlternativesInput struct {
	Chemical string `json:"chemical" jsonschema:"the chemical to find substitutes for"`
	Industry string `json:"industry,omitempty" jsonschema:"industry context narrowing the substitution"`
	Max      int    `json:"max,omitempty" jsonschema:"maximum number of alternatives (default 5)"`
}

// AlternativesOutput is the output schema for the find_alternatives tool.
type AlternativesOutput struct {
	Chemical     string              `json:"chemical"`
	Alternatives []AlternativeOutput `json:"alternatives"`
	Analysis     string              `json:"analysis,omitempty"`
}

// AlternativeOutput is one substitute candidate.
type AlternativeOutput struct {
	Name       string `json:"name"`
	Rationale  string `json:"rationale,omitempty"`
	Reference  string `json:"reference,omitempty"`
	Year       int    `json:"year,omitempty"`
	SafetyNote string `json:"safety_note,omitempty"`
}

// SearchInput is the input schema for the search_regulations tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"the search query over regulation text"`
	Market string `json:"market,omitempty" jsonschema:"restrict results to a market: EU, TW or US"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_regulations tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Citation   string   `json:"citation"`
	Source     string   `json:"source"`
	Slug       string   `json:"slug"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
	Text       string   `json:"text,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "diagnose_chemical",
		Description: "Diagnose the regulatory compliance status of a chemical in a market",
	}, s.handleDiagnose)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compare_markets",
		Description: "Compare a chemical's compliance status across jurisdictions",
	}, s.handleCompare)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_alternatives",
		Description: "Research safer substitute chemicals from the literature",
	}, s.handleAlternatives)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_regulations",
		Description: "Full-text search across synced regulation text",
	}, s.handleSearch)
}

// handleDiagnose handles the diagnose_chemical tool invocation.
func (s *Server) handleDiagnose(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiagnoseInput,
) (*mcp.CallToolResult, DiagnoseOutput, error) {
	market := domain.MarketEU
	if input.Market != "" {
		parsed, err := domain.ParseMarket(input.Market)
		if err != nil {
			return nil, DiagnoseOutput{}, err
		}
		market = parsed
	}

	diagnosis, err := s.ports.Diagnosis.Diagnose(ctx, input.Chemical, market)
	if err != nil {
		return nil, DiagnoseOutput{}, err
	}

	output := DiagnoseOutput{
		Chemical: diagnosis.Chemical.Name,
		CAS:      diagnosis.Chemical.CASNumbers,
		Market:   diagnosis.Market.String(),
		Status:   diagnosis.Status.String(),
		Basis:    diagnosis.Basis,
		Reason:   diagnosis.Reason,
	}
	for i := range diagnosis.Evidence {
		output.Evidence = append(output.Evidence, diagnosis.Evidence[i].Basis())
	}

	return nil, output, nil
}

// handleCompare handles the compare_markets tool invocation.
func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareInput,
) (*mcp.CallToolResult, CompareOutput, error) {
	if s.ports.Comparison == nil {
		return nil, CompareOutput{}, errors.New("comparison service unavailable")
	}

	var markets []domain.Market
	for _, raw := range input.Markets {
		market, err := domain.ParseMarket(raw)
		if err != nil {
			return nil, CompareOutput{}, err
		}
		markets = append(markets, market)
	}

	comparison, err := s.ports.Comparison.Compare(ctx, input.Chemical, markets)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	output := CompareOutput{
		Chemical: comparison.Chemical.Name,
		CAS:      comparison.Chemical.CASNumbers,
		Summary:  comparison.Summary,
	}
	for i := range comparison.Rows {
		output.Rows = append(output.Rows, CompareRowOutput{
			Market: comparison.Rows[i].Market.String(),
			Status: comparison.Rows[i].Status.String(),
			Basis:  comparison.Rows[i].Basis,
		})
	}
	if strictest := comparison.Strictest(); strictest != nil {
		output.Strictest = strictest.Market.String()
	}

	return nil, output, nil
}

// handleAlternatives handles the find_alternatives tool invocation.
func (s *Server) handleAlternatives(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AlternativesInput,
) (*mcp.CallToolResult, AlternativesOutput, error) {
	if s.ports.Alternatives == nil {
		return nil, AlternativesOutput{}, errors.New("alternatives service unavailable")
	}

	maxAlternatives := input.Max
	if maxAlternatives <= 0 {
		maxAlternatives = 5
	}

	report, err := s.ports.Alternatives.Research(ctx, input.Chemical, input.Industry, maxAlternatives)
	if err != nil {
		return nil, AlternativesOutput{}, err
	}

	output := AlternativesOutput{
		Chemical: report.Chemical.Name,
		Analysis: report.Analysis,
	}
	for i := range report.Alternatives {
		alt := &report.Alternatives[i]
		output.Alternatives = append(output.Alternatives, AlternativeOutput{
			Name:       alt.Name,
			Rationale:  alt.Rationale,
			Reference:  alt.Reference,
			Year:       alt.Year,
			SafetyNote: alt.SafetyNote,
		})
	}

	return nil, output, nil
}

// handleSearch handles the search_regulations tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if s.ports.Search == nil {
		return nil, SearchOutput{}, errors.New("search service unavailable")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{Limit: limit}
	if input.Market != "" {
		market, err := domain.ParseMarket(input.Market)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		opts.Market = market
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Citation:   results[i].Section.Citation,
			Source:     results[i].SourceName,
			Slug:       results[i].Slug,
			Score:      results[i].Score,
			Highlights: results[i].Highlights,
			Text:       results[i].Section.Text,
		}
	}

	return nil, output, nil
}
