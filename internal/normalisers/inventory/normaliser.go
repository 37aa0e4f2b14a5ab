// Package inventory normalises inventory scraper output. The scrapers
// already parse their tabular formats, so the work here is stamping
// listings with source identity and hashing the set for change
// detection.
package inventory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles inventory listings.
type Normaliser struct{}

// New creates an inventory normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser identifier.
func (n *Normaliser) Name() string {
	return "inventory"
}

// Normalise converts raw listings into stored listings. A raw listing
// without a recognised classification defaults to plain list
// membership. The snapshot carries no content; its hash covers the
// listing set so an unchanged inventory is detected cheaply.
func (n *Normaliser) Normalise(
	_ context.Context, source domain.Source, raw *domain.RawSnapshot,
) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if len(raw.Listings) == 0 {
		return nil, fmt.Errorf("%w: inventory snapshot has no listings", domain.ErrInvalidInput)
	}

	now := time.Now()
	hasher := sha256.New()

	listings := make([]domain.Listing, 0, len(raw.Listings))
	for _, rl := range raw.Listings {
		classification := rl.Classification
		if !classification.IsValid() {
			classification = domain.ClassificationListed
		}

		listings = append(listings, domain.Listing{
			ID:             uuid.New().String(),
			SourceID:       source.ID,
			Slug:           source.Slug,
			Jurisdiction:   source.Jurisdiction,
			CAS:            rl.CAS,
			ChemicalName:   rl.Name,
			ListName:       rl.ListName,
			Classification: classification,
			Citation:       rl.Citation,
			Activity:       rl.Activity,
			FetchedAt:      now,
		})

		fmt.Fprintf(hasher, "%s|%s|%s|%s|%s\n",
			rl.CAS, rl.Name, classification, rl.Citation, rl.Activity)
	}

	snapshot := domain.Snapshot{
		ID:        uuid.New().String(),
		SourceID:  source.ID,
		Slug:      source.Slug,
		URI:       raw.URI,
		Title:     raw.Title,
		SHA256:    hex.EncodeToString(hasher.Sum(nil)),
		FetchedAt: now,
	}

	return &driven.NormaliseResult{
		Snapshot: snapshot,
		Listings: listings,
	}, nil
}
