package mcp

import (
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Diagnosis performs compliance diagnoses.
	Diagnosis driving.DiagnosisService

	// Comparison builds cross-market reports.
	Comparison driving.ComparisonService

	// Alternatives researches substitute chemicals.
	Alternatives driving.AlternativesService

	// Search provides regulation text search.
	Search driving.SearchService

	// Source manages source configurations.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Diagnosis == nil {
		return ErrMissingDiagnosisService
	}
	// The remaining ports are optional; their tools report
	// unavailability when invoked.
	return nil
}
