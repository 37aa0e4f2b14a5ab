// Package cscra fetches Taiwan's Chemical Substances Control and
// Regulation Act text from the Ministry of Justice law database
// (law.moj.gov.tw). Articles are written as 第 N 條 headings; the
// regulation normaliser splits on those.
package cscra

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/fetch"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/page"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

// Scraper fetches a statute page from the Taiwan law database.
type Scraper struct {
	sourceID string
	url      string
	language string
	client   *fetch.Client
	mu       sync.Mutex
	closed   bool
}

// New creates a CSCRA scraper for the given source.
func New(source domain.Source) (driven.Scraper, error) {
	if source.URL == "" {
		return nil, fmt.Errorf("%w: cscra source requires a URL", domain.ErrInvalidInput)
	}
	language := source.Config["language"]
	if language == "" {
		language = "zh-TW"
	}
	return &Scraper{
		sourceID: source.ID,
		url:      source.URL,
		language: language,
		client:   fetch.NewClient(),
	}, nil
}

// Type returns the scraper type identifier.
func (s *Scraper) Type() string {
	return "cscra"
}

// SourceID returns the source identifier.
func (s *Scraper) SourceID() string {
	return s.sourceID
}

// Capabilities returns the scraper's capabilities.
func (s *Scraper) Capabilities() driven.ScraperCapabilities {
	return driven.ScraperCapabilities{
		SupportsWatch:        false,
		SupportsValidation:   true,
		SupportsCursorReturn: true,
		SupportsRateLimiting: true,
		SupportsPagination:   false,
		RequiresAuth:         false,
	}
}

// Validate probes the law database endpoint.
func (s *Scraper) Validate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrScraperClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.client.Head(ctx, s.url); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrScraperValidation, err)
	}
	return nil
}

// Fetch retrieves the full statute page.
func (s *Scraper) Fetch(ctx context.Context) (<-chan domain.RawSnapshot, <-chan error) {
	snapsChan := make(chan domain.RawSnapshot)
	errsChan := make(chan error, 1)

	go func() {
		defer close(snapsChan)
		defer close(errsChan)

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			errsChan <- domain.ErrScraperClosed
			return
		}
		s.mu.Unlock()

		body, err := s.client.Get(ctx, s.url)
		if err != nil {
			errsChan <- fmt.Errorf("fetch statute: %w", err)
			return
		}

		metadata := map[string]any{
			"language": s.language,
		}
		if pcode := pcodeFromURL(s.url); pcode != "" {
			metadata["pcode"] = pcode
		}

		snapshot := domain.RawSnapshot{
			SourceID: s.sourceID,
			URI:      s.url,
			Title:    page.Title(body),
			HTML:     body,
			Metadata: metadata,
		}

		select {
		case <-ctx.Done():
			return
		case snapsChan <- snapshot:
		}

		errsChan <- &driven.SyncComplete{NewCursor: page.Hash(body)}
	}()

	return snapsChan, errsChan
}

// Watch is not supported.
func (s *Scraper) Watch(_ context.Context) (<-chan domain.SnapshotChange, error) {
	return nil, domain.ErrNotImplemented
}

// Close releases resources.
func (s *Scraper) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// pcodeFromURL extracts the law database's pcode query parameter,
// the stable statute identifier (e.g. M0060060).
func pcodeFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	for key, values := range u.Query() {
		// The portal uses both "pcode" and "PCode" across pages.
		if len(values) > 0 && (key == "pcode" || key == "PCode") {
			return values[0]
		}
	}
	return ""
}
