// Package cfr fetches US Code of Federal Regulations text from the
// eCFR versioner API. The API serves point-in-time XML for a title,
// optionally narrowed to a part; the regulation normaliser splits the
// content on § headings.
package cfr

import (
	"context"
	"fmt"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/fetch"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/page"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

// Scraper fetches CFR text from the eCFR API.
type Scraper struct {
	sourceID string
	url      string
	config   *Config
	client   *fetch.Client
	mu       sync.Mutex
	closed   bool
}

// Config holds eCFR scraper configuration.
type Config struct {
	// Title is the CFR title number (e.g. "40" for environment).
	Title string

	// Part narrows the fetch to one part (e.g. "721", significant new
	// use rules). Empty fetches the whole title.
	Part string
}

// ParseConfig extracts scraper configuration from a source's config map.
func ParseConfig(cfg map[string]string) (*Config, error) {
	title := cfg["title"]
	if title == "" {
		return nil, fmt.Errorf("%w: cfr source requires a title number", domain.ErrInvalidInput)
	}
	return &Config{
		Title: title,
		Part:  cfg["part"],
	}, nil
}

// New creates an eCFR scraper for the given source.
func New(source domain.Source) (driven.Scraper, error) {
	cfg, err := ParseConfig(source.Config)
	if err != nil {
		return nil, err
	}
	if source.URL == "" {
		return nil, fmt.Errorf("%w: cfr source requires a URL", domain.ErrInvalidInput)
	}
	return &Scraper{
		sourceID: source.ID,
		url:      source.URL,
		config:   cfg,
		client:   fetch.NewClient(),
	}, nil
}

// Type returns the scraper type identifier.
func (s *Scraper) Type() string {
	return "cfr"
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

// Validate probes the eCFR endpoint.
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

// Fetch retrieves the CFR content as a single snapshot.
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
			errsChan <- fmt.Errorf("fetch cfr title %s: %w", s.config.Title, err)
			return
		}

		title := fmt.Sprintf("%s CFR", s.config.Title)
		if s.config.Part != "" {
			title = fmt.Sprintf("%s CFR Part %s", s.config.Title, s.config.Part)
		}

		metadata := map[string]any{
			"cfr_title": s.config.Title,
		}
		if s.config.Part != "" {
			metadata["cfr_part"] = s.config.Part
		}

		snapshot := domain.RawSnapshot{
			SourceID: s.sourceID,
			URI:      s.url,
			Title:    title,
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
