package driven

import "context"

// ChemicalResolver maps substance names to registry identifiers.
// Backed by the PubChem PUG REST API.
type ChemicalResolver interface {
	// ResolveCID maps a substance name to a PubChem compound ID.
	// Returns domain.ErrChemicalNotFound if no compound matches.
	ResolveCID(ctx context.Context, name string) (int64, error)

	// ResolveCAS returns the CAS registry numbers for a compound ID.
	// The first entry is the primary number.
	ResolveCAS(ctx context.Context, cid int64) ([]string, error)

	// Close releases resources.
	Close() error
}
