package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// chemicalStore implements driven.ChemicalStore.
type chemicalStore struct {
	store *Store
}

var _ driven.ChemicalStore = (*chemicalStore)(nil)

// Save stores or updates a resolved chemical.
func (s *chemicalStore) Save(ctx context.Context, chem domain.Chemical) error {
	if chem.Name == "" {
		return domain.ErrInvalidInput
	}

	casJSON, err := json.Marshal(chem.CASNumbers)
	if err != nil {
		return fmt.Errorf("encoding CAS numbers: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO chemicals (name, cid, cas_numbers, resolved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			cid = excluded.cid,
			cas_numbers = excluded.cas_numbers,
			resolved_at = excluded.resolved_at
	`, chem.Name, chem.CID, string(casJSON), chem.ResolvedAt)

	if err != nil {
		return fmt.Errorf("saving chemical: %w", err)
	}
	return nil
}

// GetByName retrieves a cached chemical by name, case-insensitively.
func (s *chemicalStore) GetByName(ctx context.Context, name string) (*domain.Chemical, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT name, cid, cas_numbers, resolved_at
		FROM chemicals WHERE name = ? COLLATE NOCASE
	`, name)

	var chem domain.Chemical
	var casJSON string
	if err := row.Scan(&chem.Name, &chem.CID, &casJSON, &chem.ResolvedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chemical: %w", err)
	}

	if err := json.Unmarshal([]byte(casJSON), &chem.CASNumbers); err != nil {
		return nil, fmt.Errorf("decoding CAS numbers: %w", err)
	}
	return &chem, nil
}
