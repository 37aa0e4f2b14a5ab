// Package pubchem resolves substance names to CAS registry numbers
// through the PubChem PUG REST API. Resolution is two-step: name to
// compound ID, then compound ID to registry numbers.
package pubchem

import (
	"context"
	"fmt"
	"net/url"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/fetch"
)

// Ensure Resolver implements the interface.
var _ driven.ChemicalResolver = (*Resolver)(nil)

// DefaultBaseURL is the public PUG REST endpoint.
const DefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"

// requestRate stays under PubChem's limit of 5 requests per second.
const requestRate = 5.0

// Resolver resolves chemical identities against PubChem.
type Resolver struct {
	baseURL string
	client  *fetch.Client
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseURL overrides the API endpoint (used in tests).
func WithBaseURL(u string) Option {
	return func(r *Resolver) {
		r.baseURL = u
	}
}

// New creates a PubChem resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		baseURL: DefaultBaseURL,
		client:  fetch.NewClient(fetch.WithRate(requestRate)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// cidResponse mirrors the name-to-CID response.
type cidResponse struct {
	IdentifierList struct {
		CID []int64 `json:"CID"`
	} `json:"IdentifierList"`
}

// xrefResponse mirrors the CID-to-registry-numbers response.
type xrefResponse struct {
	InformationList struct {
		Information []struct {
			CID int64    `json:"CID"`
			RN  []string `json:"RN"`
		} `json:"Information"`
	} `json:"InformationList"`
}

// ResolveCID maps a substance name to a PubChem compound ID.
// PubChem returns 404 for unknown names.
func (r *Resolver) ResolveCID(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, domain.ErrInvalidInput
	}

	u := fmt.Sprintf("%s/compound/name/%s/cids/JSON", r.baseURL, url.PathEscape(name))

	var resp cidResponse
	if err := r.client.GetJSON(ctx, u, &resp); err != nil {
		if fetch.IsNotFound(err) {
			return 0, fmt.Errorf("%w: %q", domain.ErrChemicalNotFound, name)
		}
		return 0, fmt.Errorf("pubchem: resolve %q: %w", name, err)
	}

	if len(resp.IdentifierList.CID) == 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrChemicalNotFound, name)
	}
	return resp.IdentifierList.CID[0], nil
}

// ResolveCAS returns the CAS registry numbers for a compound ID.
func (r *Resolver) ResolveCAS(ctx context.Context, cid int64) ([]string, error) {
	if cid == 0 {
		return nil, domain.ErrInvalidInput
	}

	u := fmt.Sprintf("%s/compound/cid/%d/xrefs/RN/JSON", r.baseURL, cid)

	var resp xrefResponse
	if err := r.client.GetJSON(ctx, u, &resp); err != nil {
		if fetch.IsNotFound(err) {
			return nil, fmt.Errorf("%w: CID %d", domain.ErrChemicalNotFound, cid)
		}
		return nil, fmt.Errorf("pubchem: xrefs for CID %d: %w", cid, err)
	}

	if len(resp.InformationList.Information) == 0 {
		return nil, fmt.Errorf("%w: CID %d has no registry numbers", domain.ErrChemicalNotFound, cid)
	}
	return resp.InformationList.Information[0].RN, nil
}

// Close releases resources.
func (r *Resolver) Close() error {
	return nil
}
