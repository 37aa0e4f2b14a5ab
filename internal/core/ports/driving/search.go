package driving

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// SearchService provides regulation section search to external actors.
type SearchService interface {
	// Search performs keyword search across all indexed sections.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
