package eurlex

import (
	"fmt"
	"strings"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// Config holds EUR-Lex scraper configuration.
type Config struct {
	// Language is the two-letter EUR-Lex language code (default "EN").
	Language string
}

// ParseConfig extracts scraper configuration from a source's config map.
func ParseConfig(cfg map[string]string) (*Config, error) {
	language := strings.ToUpper(cfg["language"])
	if language == "" {
		language = "EN"
	}
	if len(language) != 2 {
		return nil, fmt.Errorf("%w: invalid eurlex language %q", domain.ErrInvalidInput, cfg["language"])
	}
	return &Config{Language: language}, nil
}
