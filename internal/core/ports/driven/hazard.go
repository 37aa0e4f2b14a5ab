package driven

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// HazardDatabase looks up hazard data for a chemical.
// Implementations try each CAS number in order until one yields a profile.
type HazardDatabase interface {
	// Profile returns the hazard profile for the first CAS number that
	// has an entry. Returns domain.ErrNoHazardData when none do.
	Profile(ctx context.Context, casNumbers []string) (*domain.HazardProfile, error)

	// Close releases resources.
	Close() error
}
