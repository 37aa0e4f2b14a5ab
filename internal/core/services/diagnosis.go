package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
)

// Ensure DiagnosisService implements the interface.
var _ driving.DiagnosisService = (*DiagnosisService)(nil)

// DefaultDiagnosisTimeout bounds a diagnosis when the caller's context
// carries no deadline of its own.
const DefaultDiagnosisTimeout = 30 * time.Second

// defaultHistoryLimit is used when callers ask for history without a limit.
const defaultHistoryLimit = 20

// DiagnosisService determines the compliance status of a chemical in a
// market from the locally synced dataset, with optional remote identity
// resolution and hazard enrichment.
type DiagnosisService struct {
	regStore  driven.RegulationStore
	diagStore driven.DiagnosisStore
	identity  identityResolver
	hazard    driven.HazardDatabase
}

// NewDiagnosisService creates a diagnosis service.
// resolver and hazard are optional; without them the service diagnoses
// from cached identities and name matches only (offline mode).
func NewDiagnosisService(
	regStore driven.RegulationStore,
	chemStore driven.ChemicalStore,
	diagStore driven.DiagnosisStore,
	resolver driven.ChemicalResolver,
	hazard driven.HazardDatabase,
) *DiagnosisService {
	return &DiagnosisService{
		regStore:  regStore,
		diagStore: diagStore,
		identity:  identityResolver{chemStore: chemStore, resolver: resolver},
		hazard:    hazard,
	}
}

// Diagnose determines the compliance status of a chemical in a market.
// An unresolvable chemical yields StatusUnknown with a Reason, not an error.
func (s *DiagnosisService) Diagnose(ctx context.Context, chemicalName string, market domain.Market) (*domain.Diagnosis, error) {
	chemicalName = strings.TrimSpace(chemicalName)
	if chemicalName == "" {
		return nil, fmt.Errorf("%w: chemical name is required", domain.ErrInvalidInput)
	}
	if !market.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrMarketUnsupported, market)
	}

	// Bound the whole operation unless the caller already did.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultDiagnosisTimeout)
		defer cancel()
	}

	start := time.Now()

	chemical := s.identity.Resolve(ctx, chemicalName)

	listings, err := s.collectListings(ctx, chemical, market)
	if err != nil {
		return nil, err
	}

	diag := &domain.Diagnosis{
		ID:          uuid.NewString(),
		Chemical:    chemical,
		Market:      market,
		Evidence:    listings,
		DiagnosedAt: start,
	}

	switch {
	case len(listings) > 0:
		worst := mostSevereListing(listings)
		diag.Status = worst.Classification.Status()
		diag.Basis = worst.Basis()

	case chemical.Resolved():
		// Identity is known and the dataset has no entry for it.
		diag.Status = domain.StatusNotListed

	default:
		diag.Status = domain.StatusUnknown
		diag.Reason = fmt.Sprintf("could not resolve %q to a known chemical identity", chemicalName)
	}

	if s.hazard != nil && len(chemical.CASNumbers) > 0 {
		profile, err := s.hazard.Profile(ctx, chemical.CASNumbers)
		switch {
		case err == nil:
			diag.Hazard = profile
		case errors.Is(err, domain.ErrNoHazardData):
			// No entry is a normal outcome, not a failure.
		default:
			logger.Warn("hazard lookup failed for %s: %v", chemical.Name, err)
		}
	}

	diag.Elapsed = time.Since(start)

	if err := s.diagStore.Save(ctx, diag); err != nil {
		logger.Warn("save diagnosis: %v", err)
	}

	return diag, nil
}

// History returns recent diagnoses, most recent first.
func (s *DiagnosisService) History(ctx context.Context, limit int) ([]domain.Diagnosis, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.diagStore.History(ctx, limit)
}

// collectListings gathers the evidence for a diagnosis. CAS matches are
// authoritative; a name match is the fallback when no CAS is known or
// the CAS numbers hit nothing.
func (s *DiagnosisService) collectListings(ctx context.Context, chemical domain.Chemical, market domain.Market) ([]domain.Listing, error) {
	if len(chemical.CASNumbers) > 0 {
		listings, err := s.regStore.ListingsByCAS(ctx, chemical.CASNumbers, market)
		if err != nil {
			return nil, fmt.Errorf("listings by CAS: %w", err)
		}
		if len(listings) > 0 {
			return listings, nil
		}
	}

	listings, err := s.regStore.ListingsByName(ctx, chemical.Name, market)
	if err != nil {
		return nil, fmt.Errorf("listings by name: %w", err)
	}
	return listings, nil
}

// mostSevereListing returns the listing whose classification implies the
// most restrictive compliance status.
func mostSevereListing(listings []domain.Listing) *domain.Listing {
	worst := &listings[0]
	for i := range listings[1:] {
		l := &listings[i+1]
		if l.Classification.Status().Severity() > worst.Classification.Status().Severity() {
			worst = l
		}
	}
	return worst
}
