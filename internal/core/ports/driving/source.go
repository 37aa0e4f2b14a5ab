package driving

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// SourceService manages regulatory source configurations.
type SourceService interface {
	// Add creates a new source configuration.
	Add(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Update modifies an existing source configuration.
	Update(ctx context.Context, source domain.Source) error

	// Remove deletes a source and its stored data.
	Remove(ctx context.Context, id string) error

	// Seed installs the built-in source catalogue, skipping slugs
	// that already exist. Returns the number of sources added.
	Seed(ctx context.Context) (int, error)
}
