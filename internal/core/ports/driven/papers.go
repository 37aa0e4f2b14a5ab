package driven

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// PaperSearch finds scientific literature for the alternatives pipeline.
// Optional; without it, alternatives research is disabled.
type PaperSearch interface {
	// Search returns up to limit literature hits for the query.
	Search(ctx context.Context, query string, limit int) ([]domain.PaperRef, error)

	// FetchAbstract retrieves the abstract (or readable body text) of a
	// paper. Returns an empty string when the page yields nothing usable.
	FetchAbstract(ctx context.Context, ref domain.PaperRef) (string, error)

	// Close releases resources.
	Close() error
}
