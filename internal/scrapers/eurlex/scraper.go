// Package eurlex fetches consolidated regulation text from EUR-Lex.
// The consolidated HTML for a CELEX number carries the full text of the
// regulation with all amendments applied; the regulation normaliser
// splits it into articles.
package eurlex

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/fetch"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/page"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

// celexRe matches a CELEX identifier in a EUR-Lex URL, e.g.
// CELEX:02006R1907-20240801. The trailing date is the consolidation date.
var celexRe = regexp.MustCompile(`CELEX:(\d{5}[A-Z]\d{4})(?:-(\d{8}))?`)

// Scraper fetches a consolidated regulation page from EUR-Lex.
type Scraper struct {
	sourceID string
	url      string
	config   *Config
	client   *fetch.Client
	mu       sync.Mutex
	closed   bool
}

// New creates a EUR-Lex scraper for the given source.
func New(source domain.Source) (driven.Scraper, error) {
	cfg, err := ParseConfig(source.Config)
	if err != nil {
		return nil, err
	}
	if source.URL == "" {
		return nil, fmt.Errorf("%w: eurlex source requires a URL", domain.ErrInvalidInput)
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
	return "eurlex"
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

// Validate probes the EUR-Lex endpoint.
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

// Fetch retrieves the consolidated regulation page.
// Emits a single snapshot carrying the full HTML; the cursor sent via
// SyncComplete is the SHA-256 of the page content.
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
			errsChan <- fmt.Errorf("fetch consolidated text: %w", err)
			return
		}

		metadata := map[string]any{
			"language": s.config.Language,
		}
		if m := celexRe.FindStringSubmatch(s.url); m != nil {
			metadata["celex"] = m[1]
			if m[2] != "" {
				metadata["version_date"] = m[2]
			}
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

// Watch is not supported; EUR-Lex offers no push mechanism.
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
