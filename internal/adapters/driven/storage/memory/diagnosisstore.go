package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// Ensure DiagnosisStore implements the interface.
var _ driven.DiagnosisStore = (*DiagnosisStore)(nil)

// DiagnosisStore is an in-memory implementation of driven.DiagnosisStore.
type DiagnosisStore struct {
	mu        sync.RWMutex
	diagnoses []domain.Diagnosis
}

// NewDiagnosisStore creates a new in-memory diagnosis store.
func NewDiagnosisStore() *DiagnosisStore {
	return &DiagnosisStore{}
}

// Save stores a completed diagnosis.
func (s *DiagnosisStore) Save(_ context.Context, diag *domain.Diagnosis) error {
	if diag == nil || diag.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnoses = append(s.diagnoses, *diag)
	return nil
}

// History returns recent diagnoses, most recent first.
func (s *DiagnosisStore) History(_ context.Context, limit int) ([]domain.Diagnosis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := append([]domain.Diagnosis(nil), s.diagnoses...)
	sort.Slice(result, func(i, j int) bool {
		return result[i].DiagnosedAt.After(result[j].DiagnosedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
