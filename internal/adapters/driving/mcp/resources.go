package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Regwatch resources.
	uriScheme = "regwatch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing regulatory sources.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "List of all configured regulatory sources",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	// Static resource for the diagnosis history.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent compliance diagnoses, most recent first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Template for per-market diagnosis history.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{market}",
		Name:        "market-history",
		Description: "Recent diagnoses for a specific market",
		MIMEType:    "application/json",
	}, s.handleMarketHistoryResource)
}

// handleSourcesResource returns a list of all configured sources.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Source == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	sources, err := s.ports.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	// Build simplified source list.
	type sourceInfo struct {
		Slug         string `json:"slug"`
		Name         string `json:"name"`
		Type         string `json:"type"`
		Jurisdiction string `json:"jurisdiction"`
		Dataset      string `json:"dataset"`
		Enabled      bool   `json:"enabled"`
	}

	infos := make([]sourceInfo, len(sources))
	for i, src := range sources {
		infos[i] = sourceInfo{
			Slug:         src.Slug,
			Name:         src.Name,
			Type:         src.Type,
			Jurisdiction: src.Jurisdiction.String(),
			Dataset:      string(src.Dataset),
			Enabled:      src.Enabled,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// historyEntry is the simplified JSON shape of one diagnosis.
type historyEntry struct {
	Chemical    string `json:"chemical"`
	Market      string `json:"market"`
	Status      string `json:"status"`
	Basis       string `json:"basis,omitempty"`
	DiagnosedAt string `json:"diagnosed_at"`
}

// handleHistoryResource returns the recent diagnosis history.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return s.historyResult(ctx, req.Params.URI, "")
}

// handleMarketHistoryResource returns history filtered to one market.
func (s *Server) handleMarketHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	market := extractMarket(req.Params.URI)
	if market == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return s.historyResult(ctx, req.Params.URI, market)
}

func (s *Server) historyResult(ctx context.Context, uri, market string) (*mcp.ReadResourceResult, error) {
	history, err := s.ports.Diagnosis.History(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	entries := make([]historyEntry, 0, len(history))
	for i := range history {
		d := &history[i]
		if market != "" && !strings.EqualFold(d.Market.String(), market) {
			continue
		}
		entries = append(entries, historyEntry{
			Chemical:    d.Chemical.Name,
			Market:      d.Market.String(),
			Status:      d.Status.String(),
			Basis:       d.Basis,
			DiagnosedAt: d.DiagnosedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractMarket extracts the market from a URI like regwatch://history/{market}.
func extractMarket(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
