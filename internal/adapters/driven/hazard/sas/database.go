// Package sas looks up hazard data in the Safety Assessment System
// database (sas.cmdm.tw). The database is keyed by CAS number and
// returns 404 for numbers it has no entry for, so lookup walks the
// chemical's CAS numbers in order until one hits.
package sas

import (
	"context"
	"fmt"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/fetch"
)

// Ensure Database implements the interface.
var _ driven.HazardDatabase = (*Database)(nil)

// DefaultBaseURL is the public SAS API endpoint.
const DefaultBaseURL = "https://sas.cmdm.tw/api"

// provider is the identifier recorded on returned profiles.
const provider = "sas"

// Database queries the SAS hazard database.
type Database struct {
	baseURL string
	client  *fetch.Client
}

// Option configures a Database.
type Option func(*Database)

// WithBaseURL overrides the API endpoint (used in tests).
func WithBaseURL(u string) Option {
	return func(d *Database) {
		d.baseURL = u
	}
}

// New creates a SAS hazard database client.
func New(opts ...Option) *Database {
	d := &Database{
		baseURL: DefaultBaseURL,
		client:  fetch.NewClient(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Profile returns the hazard profile for the first CAS number that has
// an entry. A 404 moves on to the next number; any other failure
// aborts, since skipping past a transient error could silently hide
// real hazard data.
func (d *Database) Profile(ctx context.Context, casNumbers []string) (*domain.HazardProfile, error) {
	if len(casNumbers) == 0 {
		return nil, domain.ErrNoHazardData
	}

	for _, cas := range casNumbers {
		if cas == "" {
			continue
		}

		u := fmt.Sprintf("%s/casnos/%s", d.baseURL, cas)

		var attributes map[string]any
		err := d.client.GetJSON(ctx, u, &attributes)
		if err != nil {
			if fetch.IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("sas: lookup %s: %w", cas, err)
		}

		return &domain.HazardProfile{
			CAS:         cas,
			Provider:    provider,
			Attributes:  attributes,
			RetrievedAt: time.Now(),
		}, nil
	}

	return nil, fmt.Errorf("%w: no SAS entry for %v", domain.ErrNoHazardData, casNumbers)
}

// Close releases resources.
func (d *Database) Close() error {
	return nil
}
