// Package echa fetches the ECHA Candidate List of substances of very
// high concern. The list is an HTML table; each row becomes a raw
// listing keyed by CAS number.
package echa

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/fetch"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/page"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

const (
	// listName is the canonical list name for candidate list entries.
	listName = "ECHA Candidate List (SVHC)"

	// citation is the legal basis for candidate list inclusion.
	citation = "REACH Article 59"
)

// Scraper fetches and parses the SVHC candidate list.
type Scraper struct {
	sourceID string
	url      string
	client   *fetch.Client
	mu       sync.Mutex
	closed   bool
}

// New creates an ECHA candidate list scraper for the given source.
func New(source domain.Source) (driven.Scraper, error) {
	if source.URL == "" {
		return nil, fmt.Errorf("%w: echa source requires a URL", domain.ErrInvalidInput)
	}
	return &Scraper{
		sourceID: source.ID,
		url:      source.URL,
		client:   fetch.NewClient(),
	}, nil
}

// Type returns the scraper type identifier.
func (s *Scraper) Type() string {
	return "echa"
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

// Validate probes the ECHA endpoint.
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

// Fetch retrieves the candidate list and parses it into listings.
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
			errsChan <- fmt.Errorf("fetch candidate list: %w", err)
			return
		}

		listings, err := parseCandidateList(body)
		if err != nil {
			errsChan <- err
			return
		}
		if len(listings) == 0 {
			errsChan <- fmt.Errorf("candidate list page had no parseable rows")
			return
		}

		snapshot := domain.RawSnapshot{
			SourceID: s.sourceID,
			URI:      s.url,
			Title:    page.Title(body),
			Listings: listings,
			Metadata: map[string]any{
				"entry_count": len(listings),
			},
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

// parseCandidateList extracts listings from the candidate list table.
// Rows without a substance name are skipped; a missing CAS ("-") is
// kept as an empty string because some SVHC entries are substance
// groups without a single CAS number.
func parseCandidateList(body []byte) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse candidate list: %w", err)
	}

	var listings []domain.RawListing
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		name := cellText(cells.Eq(0))
		cas := cellText(cells.Eq(2))
		if name == "" {
			return
		}
		if cas == "-" {
			cas = ""
		}

		listings = append(listings, domain.RawListing{
			CAS:            cas,
			Name:           name,
			ListName:       listName,
			Classification: domain.ClassificationListed,
			Citation:       citation,
		})
	})
	return listings, nil
}

func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
