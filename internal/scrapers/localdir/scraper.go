// Package localdir reads snapshot files from a local directory. This
// is the offline import path: a dataset exported elsewhere (or written
// by hand for testing) is dropped into the directory as JSON files,
// one file per snapshot. It is also the only scraper with Watch
// support, backed by fsnotify.
package localdir

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

// SnapshotFile is the JSON snapshot file format. The GitHub mirror
// scraper serves the same format, so the type is exported.
type SnapshotFile struct {
	Title    string         `json:"title"`
	HTML     string         `json:"html,omitempty"`
	Listings []ListingEntry `json:"listings,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ListingEntry is one inventory record in a snapshot file.
type ListingEntry struct {
	CAS            string `json:"cas"`
	Name           string `json:"name"`
	ListName       string `json:"list_name"`
	Classification string `json:"classification"`
	Citation       string `json:"citation,omitempty"`
	Activity       string `json:"activity,omitempty"`
}

// ParseSnapshot decodes a snapshot file into a raw snapshot.
func ParseSnapshot(sourceID, uri string, raw []byte) (domain.RawSnapshot, error) {
	var file SnapshotFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return domain.RawSnapshot{}, err
	}

	listings := make([]domain.RawListing, 0, len(file.Listings))
	for _, l := range file.Listings {
		listings = append(listings, domain.RawListing{
			CAS:            l.CAS,
			Name:           l.Name,
			ListName:       l.ListName,
			Classification: domain.Classification(l.Classification),
			Citation:       l.Citation,
			Activity:       l.Activity,
		})
	}

	return domain.RawSnapshot{
		SourceID: sourceID,
		URI:      uri,
		Title:    file.Title,
		HTML:     []byte(file.HTML),
		Listings: listings,
		Metadata: file.Metadata,
	}, nil
}

// Scraper reads snapshot files from a directory.
type Scraper struct {
	sourceID string
	path     string
	mu       sync.Mutex
	closed   bool
	watcher  *fsnotify.Watcher
}

// New creates a local directory scraper for the given source.
// The directory path comes from the source config.
func New(source domain.Source) (driven.Scraper, error) {
	path := source.Config["path"]
	if path == "" {
		return nil, fmt.Errorf("%w: localdir source requires a path", domain.ErrInvalidInput)
	}
	return &Scraper{
		sourceID: source.ID,
		path:     path,
	}, nil
}

// Type returns the scraper type identifier.
func (s *Scraper) Type() string {
	return "localdir"
}

// SourceID returns the source identifier.
func (s *Scraper) SourceID() string {
	return s.sourceID
}

// Capabilities returns the scraper's capabilities.
func (s *Scraper) Capabilities() driven.ScraperCapabilities {
	return driven.ScraperCapabilities{
		SupportsWatch:        true,
		SupportsValidation:   true,
		SupportsCursorReturn: true,
		SupportsRateLimiting: false,
		SupportsPagination:   false,
		RequiresAuth:         false,
	}
}

// Validate checks the directory exists and is readable.
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

	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("%w: %s does not exist", domain.ErrScraperValidation, s.path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrScraperValidation, s.path)
	}
	if _, err := os.ReadDir(s.path); err != nil {
		return fmt.Errorf("%w: %s is not readable", domain.ErrScraperValidation, s.path)
	}
	return nil
}

// Fetch reads every .json snapshot file in the directory.
// Files are read in name order so the cursor is deterministic.
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

		files, err := s.snapshotFiles()
		if err != nil {
			errsChan <- err
			return
		}

		hasher := sha256.New()
		for _, file := range files {
			select {
			case <-ctx.Done():
				return
			default:
			}

			snapshot, raw, err := s.readSnapshot(file)
			if err != nil {
				errsChan <- err
				return
			}
			hasher.Write(raw) //nolint:errcheck

			select {
			case <-ctx.Done():
				return
			case snapsChan <- snapshot:
			}
		}

		errsChan <- &driven.SyncComplete{
			NewCursor: hex.EncodeToString(hasher.Sum(nil)),
		}
	}()

	return snapsChan, errsChan
}

// Watch emits a change event whenever a snapshot file is created,
// modified or removed.
func (s *Scraper) Watch(ctx context.Context) (<-chan domain.SnapshotChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrScraperClosed
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.path); err != nil {
		watcher.Close() //nolint:errcheck
		return nil, fmt.Errorf("watch %s: %w", s.path, err)
	}
	s.watcher = watcher

	changesChan := make(chan domain.SnapshotChange)

	go func() {
		defer close(changesChan)
		defer watcher.Close() //nolint:errcheck

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				change, ok := s.convertEvent(event)
				if !ok {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case changesChan <- change:
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changesChan, nil
}

// Close releases resources, including any active watcher.
func (s *Scraper) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *Scraper) snapshotFiles() ([]string, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var files []string //nolint:prealloc // most entries may be filtered
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(s.path, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (s *Scraper) readSnapshot(path string) (domain.RawSnapshot, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.RawSnapshot{}, nil, fmt.Errorf("read %s: %w", path, err)
	}

	snapshot, err := ParseSnapshot(s.sourceID, "file://"+path, raw)
	if err != nil {
		return domain.RawSnapshot{}, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return snapshot, raw, nil
}

// convertEvent maps an fsnotify event to a snapshot change.
// Non-JSON files are ignored. Deletes carry only the URI because the
// content is gone.
func (s *Scraper) convertEvent(event fsnotify.Event) (domain.SnapshotChange, bool) {
	if !strings.HasSuffix(event.Name, ".json") {
		return domain.SnapshotChange{}, false
	}

	switch {
	case event.Has(fsnotify.Create):
		snapshot, _, err := s.readSnapshot(event.Name)
		if err != nil {
			return domain.SnapshotChange{}, false
		}
		return domain.SnapshotChange{Type: domain.ChangeCreated, Snapshot: snapshot}, true

	case event.Has(fsnotify.Write):
		snapshot, _, err := s.readSnapshot(event.Name)
		if err != nil {
			return domain.SnapshotChange{}, false
		}
		return domain.SnapshotChange{Type: domain.ChangeUpdated, Snapshot: snapshot}, true

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return domain.SnapshotChange{
			Type: domain.ChangeDeleted,
			Snapshot: domain.RawSnapshot{
				SourceID: s.sourceID,
				URI:      "file://" + event.Name,
			},
		}, true

	default:
		return domain.SnapshotChange{}, false
	}
}
