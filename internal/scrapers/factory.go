package scrapers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/cfr"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/cscra"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/echa"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/eurlex"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/ghmirror"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/localdir"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/tsca"
	"github.com/greenchem-labs/regwatch-cli/internal/scrapers/twinventory"
)

// Ensure Factory implements the interface.
var _ driven.ScraperFactory = (*Factory)(nil)

// Factory creates scrapers from source configuration.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]driven.ScraperBuilder
}

// NewFactory creates an empty scraper factory.
func NewFactory() *Factory {
	return &Factory{
		builders: make(map[string]driven.ScraperBuilder),
	}
}

// DefaultFactory creates a factory with all built-in scraper types
// registered.
func DefaultFactory() *Factory {
	f := NewFactory()
	f.Register("eurlex", eurlex.New)
	f.Register("echa", echa.New)
	f.Register("cscra", cscra.New)
	f.Register("twinventory", twinventory.New)
	f.Register("tsca", tsca.New)
	f.Register("cfr", cfr.New)
	f.Register("localdir", localdir.New)
	f.Register("ghmirror", ghmirror.New)
	return f
}

// Create returns a scraper for the given source.
func (f *Factory) Create(_ context.Context, source domain.Source) (driven.Scraper, error) {
	f.mu.RLock()
	builder, ok := f.builders[source.Type]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, source.Type)
	}
	return builder(source)
}

// Register adds a scraper builder for the given type.
func (f *Factory) Register(scraperType string, builder driven.ScraperBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[scraperType] = builder
}

// SupportedTypes returns all registered scraper types, sorted.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
