package normalisers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/normalisers/inventory"
	"github.com/greenchem-labs/regwatch-cli/internal/normalisers/regulation"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps dataset kinds to normalisers.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[domain.DatasetKind]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make(map[domain.DatasetKind]driven.Normaliser),
	}
}

// Defaults creates a registry with the built-in normalisers registered.
func Defaults() *Registry {
	r := NewRegistry()
	r.Register(domain.KindRegulation, regulation.New())
	r.Register(domain.KindInventory, inventory.New())
	return r
}

// Register adds a normaliser for a dataset kind.
func (r *Registry) Register(kind domain.DatasetKind, n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers[kind] = n
}

// Get returns the normaliser for a dataset kind.
func (r *Registry) Get(kind domain.DatasetKind) (driven.Normaliser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.normalisers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no normaliser for dataset %q", domain.ErrUnsupportedType, kind)
	}
	return n, nil
}

// Names returns all registered normaliser names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.normalisers))
	for _, n := range r.normalisers {
		names = append(names, n.Name())
	}
	sort.Strings(names)
	return names
}
