// Package regulation normalises page scraper output into markdown
// snapshots with citable sections.
package regulation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"
	"github.com/google/uuid"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles regulation page content.
type Normaliser struct {
	converter *md.Converter
}

// New creates a regulation normaliser.
func New() *Normaliser {
	return &Normaliser{
		converter: md.NewConverter("", true, nil),
	}
}

// Name returns the normaliser identifier.
func (n *Normaliser) Name() string {
	return "regulation"
}

// Normalise extracts the page's main content, converts it to markdown
// and splits it into sections. Readability extraction strips portal
// navigation; when it fails (e.g. on the eCFR's XML) the full content
// is converted instead.
func (n *Normaliser) Normalise(
	_ context.Context, source domain.Source, raw *domain.RawSnapshot,
) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if len(raw.HTML) == 0 {
		return nil, fmt.Errorf("%w: regulation snapshot has no content", domain.ErrInvalidInput)
	}

	html := string(raw.HTML)
	title := raw.Title

	pageURL, err := url.Parse(raw.URI)
	if err != nil {
		pageURL = &url.URL{}
	}
	if article, err := readability.FromReader(strings.NewReader(html), pageURL); err == nil && article.Content != "" {
		html = article.Content
		if title == "" {
			title = article.Title
		}
	}

	content, err := n.converter.ConvertString(html)
	if err != nil {
		return nil, fmt.Errorf("convert to markdown: %w", err)
	}
	content = strings.TrimSpace(content)

	info := extractLawInfo(title, raw.Metadata)

	sum := sha256.Sum256([]byte(content))
	snapshot := domain.Snapshot{
		ID:               uuid.New().String(),
		SourceID:         source.ID,
		Slug:             source.Slug,
		URI:              raw.URI,
		Title:            title,
		RegulationNumber: info.Number,
		DocumentType:     info.DocumentType,
		VersionDate:      info.VersionDate,
		Content:          content,
		SHA256:           hex.EncodeToString(sum[:]),
		FetchedAt:        time.Now(),
	}

	sections := splitSections(snapshot.ID, content)

	return &driven.NormaliseResult{
		Snapshot: snapshot,
		Sections: sections,
	}, nil
}
