package driving

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// DiagnosisService performs compliance diagnoses.
type DiagnosisService interface {
	// Diagnose determines the compliance status of a chemical in a market.
	// The chemical is given by name; identity resolution happens inside.
	// An unresolvable chemical yields StatusUnknown with a Reason, not
	// an error. The context deadline bounds the whole operation.
	Diagnose(ctx context.Context, chemicalName string, market domain.Market) (*domain.Diagnosis, error)

	// History returns recent diagnoses, most recent first.
	History(ctx context.Context, limit int) ([]domain.Diagnosis, error)
}

// ComparisonService builds cross-jurisdiction reports.
type ComparisonService interface {
	// Compare diagnoses a chemical across the given markets and
	// assembles a comparison report. A nil or empty market list
	// compares all jurisdictions.
	Compare(ctx context.Context, chemicalName string, markets []domain.Market) (*domain.MarketComparison, error)

	// DiffRevisions compares the two most recent snapshots of a dataset.
	DiffRevisions(ctx context.Context, slug string) (*domain.RevisionDiff, error)
}

// AlternativesService researches substitute chemicals.
type AlternativesService interface {
	// Research runs the literature pipeline and extracts substitute
	// candidates for the chemical in the given industry context.
	Research(ctx context.Context, chemicalName, industry string, maxAlternatives int) (*domain.ResearchReport, error)
}
