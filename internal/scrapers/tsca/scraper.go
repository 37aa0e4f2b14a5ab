// Package tsca fetches the US EPA TSCA Inventory CSV export and parses
// it into raw listings. The export carries an activity flag per
// substance; both ACTIVE and INACTIVE entries are kept because an
// inactive listing still means the substance is on the inventory.
package tsca

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/fetch"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/page"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

const (
	listName = "TSCA Inventory"
	citation = "TSCA Section 8(b)"
)

// Scraper fetches and parses the TSCA inventory export.
type Scraper struct {
	sourceID string
	url      string
	client   *fetch.Client
	mu       sync.Mutex
	closed   bool
}

// New creates a TSCA inventory scraper for the given source.
func New(source domain.Source) (driven.Scraper, error) {
	if source.URL == "" {
		return nil, fmt.Errorf("%w: tsca source requires a URL", domain.ErrInvalidInput)
	}
	return &Scraper{
		sourceID: source.ID,
		url:      source.URL,
		client:   fetch.NewClient(),
	}, nil
}

// Type returns the scraper type identifier.
func (s *Scraper) Type() string {
	return "tsca"
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

// Validate probes the EPA endpoint.
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

// Fetch downloads the CSV export and parses it into listings.
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
			errsChan <- fmt.Errorf("fetch inventory export: %w", err)
			return
		}

		listings, err := parseInventoryCSV(body)
		if err != nil {
			errsChan <- err
			return
		}

		snapshot := domain.RawSnapshot{
			SourceID: s.sourceID,
			URI:      s.url,
			Title:    listName,
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

// parseInventoryCSV parses the EPA export. Column positions are taken
// from the header row, so reordered exports keep working. Rows without
// a CASRN are skipped (accession-number-only confidential entries).
func parseInventoryCSV(body []byte) ([]domain.RawListing, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("parse inventory csv: reading header: %w", err)
	}

	casCol, nameCol, activityCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "casrn", "cas", "cas number":
			casCol = i
		case "chemname", "chemical name", "ca index name":
			nameCol = i
		case "activity", "active status", "flag":
			activityCol = i
		}
	}
	if casCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("parse inventory csv: header lacks CASRN/ChemName columns: %v", header)
	}

	var listings []domain.RawListing
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse inventory csv: %w", err)
		}
		if casCol >= len(record) || nameCol >= len(record) {
			continue
		}

		cas := strings.TrimSpace(record[casCol])
		if cas == "" {
			continue
		}

		activity := ""
		if activityCol >= 0 && activityCol < len(record) {
			activity = strings.ToUpper(strings.TrimSpace(record[activityCol]))
		}

		listings = append(listings, domain.RawListing{
			CAS:            cas,
			Name:           strings.TrimSpace(record[nameCol]),
			ListName:       listName,
			Classification: domain.ClassificationListed,
			Citation:       citation,
			Activity:       activity,
		})
	}
	return listings, nil
}
