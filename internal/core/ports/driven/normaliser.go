package driven

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// Normaliser transforms raw scraper output into stored form.
// Each normaliser handles one dataset kind.
type Normaliser interface {
	// Name returns the normaliser identifier.
	Name() string

	// Normalise transforms a raw snapshot into a snapshot, its sections
	// and its listings. Page content is extracted to text and split into
	// sections; pre-parsed listings are carried through.
	Normalise(ctx context.Context, source domain.Source, raw *domain.RawSnapshot) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Snapshot is the normalised snapshot with Content and SHA256 populated.
	Snapshot domain.Snapshot

	// Sections are the snapshot's addressable units. Empty for inventories.
	Sections []domain.Section

	// Listings are the list memberships extracted from the raw snapshot.
	Listings []domain.Listing
}

// NormaliserRegistry selects normalisers by dataset kind.
type NormaliserRegistry interface {
	// Register adds a normaliser for a dataset kind.
	Register(kind domain.DatasetKind, n Normaliser)

	// Get returns the normaliser for a dataset kind.
	// Returns domain.ErrUnsupportedType if none is registered.
	Get(kind domain.DatasetKind) (Normaliser, error)

	// Names returns all registered normaliser names.
	Names() []string
}
