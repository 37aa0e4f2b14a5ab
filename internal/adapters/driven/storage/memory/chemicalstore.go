package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// Ensure ChemicalStore implements the interface.
var _ driven.ChemicalStore = (*ChemicalStore)(nil)

// ChemicalStore is an in-memory implementation of driven.ChemicalStore.
// Names are compared case-insensitively, matching the SQLite store.
type ChemicalStore struct {
	mu        sync.RWMutex
	chemicals map[string]domain.Chemical // keyed by lowercase name
}

// NewChemicalStore creates a new in-memory chemical store.
func NewChemicalStore() *ChemicalStore {
	return &ChemicalStore{
		chemicals: make(map[string]domain.Chemical),
	}
}

// Save stores or updates a resolved chemical.
func (s *ChemicalStore) Save(_ context.Context, chem domain.Chemical) error {
	if chem.Name == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chemicals[strings.ToLower(chem.Name)] = chem
	return nil
}

// GetByName retrieves a cached chemical by name, case-insensitively.
func (s *ChemicalStore) GetByName(_ context.Context, name string) (*domain.Chemical, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chem, ok := s.chemicals[strings.ToLower(name)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chem, nil
}
