// Package twinventory fetches the Taiwan Chemical Substance Inventory
// (TCSI) through its JSON API. The API is paginated; the scraper walks
// every page and emits one snapshot with the merged listings.
package twinventory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/fetch"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

const (
	listName = "TW Chemical Substance Inventory (TCSI)"

	// defaultPageSize matches the API's maximum page size.
	defaultPageSize = 1000

	// maxPages bounds the pagination walk. The inventory has on the
	// order of 100k substances; past this something is looping.
	maxPages = 1000
)

// record mirrors one inventory entry in the API response.
type record struct {
	SerialNo string `json:"serialNo"`
	CASNo    string `json:"casNo"`
	ChnName  string `json:"chnName"`
	EngName  string `json:"engName"`
}

// pageResponse mirrors one page of the API response.
type pageResponse struct {
	Total   int      `json:"total"`
	Records []record `json:"records"`
}

// Config holds TCSI scraper configuration.
type Config struct {
	// PageSize is the number of records requested per API call.
	PageSize int
}

// ParseConfig extracts scraper configuration from a source's config map.
func ParseConfig(cfg map[string]string) (*Config, error) {
	pageSize := defaultPageSize
	if raw := cfg["page_size"]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: invalid page_size %q", domain.ErrInvalidInput, raw)
		}
		pageSize = n
	}
	return &Config{PageSize: pageSize}, nil
}

// Scraper fetches the TCSI inventory.
type Scraper struct {
	sourceID string
	url      string
	config   *Config
	client   *fetch.Client
	mu       sync.Mutex
	closed   bool
}

// New creates a TCSI scraper for the given source.
func New(source domain.Source) (driven.Scraper, error) {
	cfg, err := ParseConfig(source.Config)
	if err != nil {
		return nil, err
	}
	if source.URL == "" {
		return nil, fmt.Errorf("%w: twinventory source requires a URL", domain.ErrInvalidInput)
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
	return "twinventory"
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
		SupportsPagination:   true,
		RequiresAuth:         false,
	}
}

// Validate probes the TCSI API.
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

// Fetch walks every inventory page and emits one merged snapshot.
// The cursor is the hash of all CAS numbers in page order, so a new
// inventory release produces a new cursor without refetching bodies.
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

		var listings []domain.RawListing
		hasher := sha256.New()

		for pageNum := 1; pageNum <= maxPages; pageNum++ {
			select {
			case <-ctx.Done():
				return
			default:
			}

			var resp pageResponse
			if err := s.client.GetJSON(ctx, s.pageURL(pageNum), &resp); err != nil {
				errsChan <- fmt.Errorf("fetch inventory page %d: %w", pageNum, err)
				return
			}

			for _, rec := range resp.Records {
				name := rec.EngName
				if name == "" {
					name = rec.ChnName
				}
				listings = append(listings, domain.RawListing{
					CAS:            rec.CASNo,
					Name:           name,
					ListName:       listName,
					Classification: domain.ClassificationListed,
				})
				hasher.Write([]byte(rec.CASNo)) //nolint:errcheck
				hasher.Write([]byte{0})         //nolint:errcheck
			}

			if len(resp.Records) < s.config.PageSize {
				break
			}
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

		errsChan <- &driven.SyncComplete{
			NewCursor: hex.EncodeToString(hasher.Sum(nil)),
		}
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

func (s *Scraper) pageURL(pageNum int) string {
	u, err := url.Parse(s.url)
	if err != nil {
		return s.url
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("pageSize", strconv.Itoa(s.config.PageSize))
	u.RawQuery = q.Encode()
	return u.String()
}
