package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
)

// diagnosisStore implements driven.DiagnosisStore.
type diagnosisStore struct {
	store *Store
}

var _ driven.DiagnosisStore = (*diagnosisStore)(nil)

// Save stores a completed diagnosis.
func (s *diagnosisStore) Save(ctx context.Context, diag *domain.Diagnosis) error {
	if diag == nil || diag.ID == "" {
		return domain.ErrInvalidInput
	}

	casJSON, err := json.Marshal(diag.Chemical.CASNumbers)
	if err != nil {
		return fmt.Errorf("encoding CAS numbers: %w", err)
	}
	evidenceJSON, err := json.Marshal(diag.Evidence)
	if err != nil {
		return fmt.Errorf("encoding evidence: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO diagnoses (id, chemical_name, cid, cas_numbers, market,
			status, basis, reason, evidence, diagnosed_at, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, diag.ID, diag.Chemical.Name, diag.Chemical.CID, string(casJSON),
		string(diag.Market), string(diag.Status), diag.Basis, diag.Reason,
		string(evidenceJSON), diag.DiagnosedAt, diag.Elapsed.Milliseconds())

	if err != nil {
		return fmt.Errorf("saving diagnosis: %w", err)
	}
	return nil
}

// History returns recent diagnoses, most recent first.
func (s *diagnosisStore) History(ctx context.Context, limit int) ([]domain.Diagnosis, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, chemical_name, cid, cas_numbers, market, status,
			basis, reason, evidence, diagnosed_at, elapsed_ms
		FROM diagnoses
		ORDER BY diagnosed_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying diagnoses: %w", err)
	}
	defer rows.Close()

	var diags []domain.Diagnosis //nolint:prealloc // size unknown from query
	for rows.Next() {
		var d domain.Diagnosis
		var market, status, casJSON, evidenceJSON string
		var elapsedMS int64
		if err := rows.Scan(&d.ID, &d.Chemical.Name, &d.Chemical.CID,
			&casJSON, &market, &status, &d.Basis, &d.Reason,
			&evidenceJSON, &d.DiagnosedAt, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scanning diagnosis: %w", err)
		}
		d.Market = domain.Market(market)
		d.Status = domain.ComplianceStatus(status)
		d.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if err := json.Unmarshal([]byte(casJSON), &d.Chemical.CASNumbers); err != nil {
			return nil, fmt.Errorf("decoding CAS numbers: %w", err)
		}
		if err := json.Unmarshal([]byte(evidenceJSON), &d.Evidence); err != nil {
			return nil, fmt.Errorf("decoding evidence: %w", err)
		}
		diags = append(diags, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating diagnoses: %w", err)
	}
	return diags, nil
}
