// Package googlecse finds scientific literature through a Google
// Programmable Search Engine. The engine is expected to be scoped to
// literature sites (publisher portals, preprint servers); the adapter
// just runs queries and maps results.
package googlecse

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/fetch"
)

// Ensure Search implements the interface.
var _ driven.PaperSearch = (*Search)(nil)

// maxPerQuery is the API's hard cap on results per request.
const maxPerQuery = 10

// abstractMaxChars caps the text extracted from a paper page.
const abstractMaxChars = 4000

// Search queries a Google Programmable Search Engine.
type Search struct {
	service  *customsearch.Service
	engineID string
	client   *fetch.Client
}

// New creates a literature search client. apiKey and engineID come
// from the user's settings; extra options are used in tests to point
// at a fake endpoint.
func New(ctx context.Context, apiKey, engineID string, opts ...option.ClientOption) (*Search, error) {
	if apiKey == "" || engineID == "" {
		return nil, fmt.Errorf("%w: google search requires api key and engine id", domain.ErrPaperSearchUnavailable)
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("googlecse: create service: %w", err)
	}

	return &Search{
		service:  service,
		engineID: engineID,
		client:   fetch.NewClient(),
	}, nil
}

// Search returns up to limit literature hits for the query.
func (s *Search) Search(ctx context.Context, query string, limit int) ([]domain.PaperRef, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > maxPerQuery {
		limit = maxPerQuery
	}

	resp, err := s.service.Cse.List().
		Q(query).
		Cx(s.engineID).
		Num(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("googlecse: search %q: %w", query, err)
	}

	papers := make([]domain.PaperRef, 0, len(resp.Items))
	for _, item := range resp.Items {
		papers = append(papers, domain.PaperRef{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
	}
	return papers, nil
}

// FetchAbstract retrieves the readable body text of a paper page.
// Pages that cannot be fetched or extracted yield an empty string, not
// an error; the pipeline falls back to the search snippet.
func (s *Search) FetchAbstract(ctx context.Context, ref domain.PaperRef) (string, error) {
	if ref.URL == "" {
		return "", nil
	}

	body, err := s.client.Get(ctx, ref.URL)
	if err != nil {
		return "", fmt.Errorf("googlecse: fetch abstract: %w", err)
	}

	pageURL, err := url.Parse(ref.URL)
	if err != nil {
		pageURL = &url.URL{}
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", nil
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) > abstractMaxChars {
		text = text[:abstractMaxChars]
	}
	return text, nil
}

// Close releases resources.
func (s *Search) Close() error {
	return nil
}
