// Package ghmirror reads dataset snapshots from a GitHub repository.
// Teams that maintain a curated mirror of regulatory data (or want to
// share one snapshot set across machines) commit snapshot JSON files
// to a repository; this scraper syncs them through the GitHub API.
// The file format is the same as the localdir scraper's.
package ghmirror

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/localdir"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

// Scraper syncs snapshot files from a GitHub repository.
type Scraper struct {
	sourceID string
	config   *Config
	client   *Client
	mu       sync.Mutex
	closed   bool
}

// New creates a GitHub mirror scraper for the given source.
func New(source domain.Source) (driven.Scraper, error) {
	cfg, err := ParseConfig(source.Config, source.URL)
	if err != nil {
		return nil, err
	}
	client, err := NewClient(context.Background(), cfg.Token, cfg.APIURL)
	if err != nil {
		return nil, err
	}
	return &Scraper{
		sourceID: source.ID,
		config:   cfg,
		client:   client,
	}, nil
}

// Type returns the scraper type identifier.
func (s *Scraper) Type() string {
	return "ghmirror"
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
		RequiresAuth:         s.config.Token != "",
	}
}

// Validate checks the mirror repository is reachable.
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

	if _, err := s.client.GetRepository(ctx, s.config.Owner, s.config.Repo); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrScraperValidation, err)
	}
	return nil
}

// Fetch reads every snapshot file under the configured directory.
// The cursor is the tree SHA, so an unchanged mirror costs two API
// calls to detect.
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

		ref := s.config.Ref
		if ref == "" {
			repo, err := s.client.GetRepository(ctx, s.config.Owner, s.config.Repo)
			if err != nil {
				errsChan <- fmt.Errorf("resolve default branch: %w", err)
				return
			}
			ref = repo.GetDefaultBranch()
		}

		tree, err := s.client.GetTree(ctx, s.config.Owner, s.config.Repo, ref)
		if err != nil {
			errsChan <- fmt.Errorf("get tree: %w", err)
			return
		}

		prefix := s.config.Dir + "/"
		for _, entry := range tree.Entries {
			select {
			case <-ctx.Done():
				return
			default:
			}

			path := entry.GetPath()
			if entry.GetType() != "blob" ||
				!strings.HasPrefix(path, prefix) ||
				!strings.HasSuffix(path, ".json") {
				continue
			}

			content, err := s.client.GetFileContent(ctx, s.config.Owner, s.config.Repo, path, ref)
			if err != nil {
				errsChan <- fmt.Errorf("fetch %s: %w", path, err)
				return
			}

			uri := fmt.Sprintf("github://%s/%s/%s", s.config.Owner, s.config.Repo, path)
			snapshot, err := localdir.ParseSnapshot(s.sourceID, uri, []byte(content))
			if err != nil {
				errsChan <- fmt.Errorf("parse %s: %w", path, err)
				return
			}

			select {
			case <-ctx.Done():
				return
			case snapsChan <- snapshot:
			}
		}

		errsChan <- &driven.SyncComplete{NewCursor: tree.GetSHA()}
	}()

	return snapsChan, errsChan
}

// Watch is not supported; there are no webhooks in a CLI.
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
