package services

import (
	"context"
	"errors"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/logger"
)

// identityResolver maps substance names to full chemical identities,
// caching resolutions so repeated diagnoses don't re-hit PubChem.
// Shared by the diagnosis and alternatives services.
type identityResolver struct {
	chemStore driven.ChemicalStore
	resolver  driven.ChemicalResolver
}

// Resolve maps a name to an identity: cache first, then the remote
// resolver. Failure to resolve is not an error; callers fold an
// unresolved identity into their own outcome.
func (r *identityResolver) Resolve(ctx context.Context, name string) domain.Chemical {
	if cached, err := r.chemStore.GetByName(ctx, name); err == nil && cached.Resolved() {
		return *cached
	}

	if r.resolver == nil {
		return domain.Chemical{Name: name}
	}

	cid, err := r.resolver.ResolveCID(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrChemicalNotFound) {
			logger.Warn("resolve %q: %v", name, err)
		}
		return domain.Chemical{Name: name}
	}

	casNumbers, err := r.resolver.ResolveCAS(ctx, cid)
	if err != nil {
		logger.Warn("resolve CAS for %q (CID %d): %v", name, cid, err)
		casNumbers = nil
	}

	chemical := domain.Chemical{
		Name:       name,
		CID:        cid,
		CASNumbers: casNumbers,
		ResolvedAt: time.Now(),
	}

	if err := r.chemStore.Save(ctx, chemical); err != nil {
		logger.Warn("cache chemical %q: %v", name, err)
	}

	return chemical
}
