// Package catalogue ships the canonical regulatory sources as an
// embedded YAML file. The source service seeds these into the store on
// first run so a fresh install can diagnose against the EU, Taiwan and
// US datasets without any manual configuration.
package catalogue

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

//go:embed sources.yaml
var sourcesYAML []byte

// entry mirrors one source record in sources.yaml.
type entry struct {
	Type         string            `yaml:"type"`
	Slug         string            `yaml:"slug"`
	Name         string            `yaml:"name"`
	Jurisdiction string            `yaml:"jurisdiction"`
	Dataset      string            `yaml:"dataset"`
	URL          string            `yaml:"url"`
	Config       map[string]string `yaml:"config"`
}

type catalogue struct {
	Sources []entry `yaml:"sources"`
}

// Sources returns the canonical source set, without IDs: the source
// service assigns IDs when seeding.
func Sources() ([]domain.Source, error) {
	var cat catalogue
	if err := yaml.Unmarshal(sourcesYAML, &cat); err != nil {
		return nil, fmt.Errorf("catalogue: parsing sources.yaml: %w", err)
	}

	sources := make([]domain.Source, 0, len(cat.Sources))
	for _, e := range cat.Sources {
		market, err := domain.ParseMarket(e.Jurisdiction)
		if err != nil {
			return nil, fmt.Errorf("catalogue: source %q: %w", e.Slug, err)
		}
		cfg := e.Config
		if cfg == nil {
			cfg = map[string]string{}
		}
		sources = append(sources, domain.Source{
			Type:         e.Type,
			Slug:         e.Slug,
			Name:         e.Name,
			Jurisdiction: market,
			Dataset:      domain.DatasetKind(e.Dataset),
			URL:          e.URL,
			Config:       cfg,
			Enabled:      true,
		})
	}
	return sources, nil
}
