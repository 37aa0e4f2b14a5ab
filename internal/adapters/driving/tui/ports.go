// Package tui provides an interactive terminal user interface for regwatch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Diagnosis answers compliance questions and keeps the history.
	Diagnosis driving.DiagnosisService

	// Comparison compares a chemical across markets. Optional.
	Comparison driving.ComparisonService

	// Search provides full-text search over regulation sections.
	Search driving.SearchService

	// Source manages regulatory source configurations.
	Source driving.SourceService

	// Sync orchestrates regulatory data synchronisation.
	Sync driving.SyncOrchestrator

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	diagnosis driving.DiagnosisService,
	search driving.SearchService,
	source driving.SourceService,
	sync driving.SyncOrchestrator,
) *Ports {
	return &Ports{
		Diagnosis: diagnosis,
		Search:    search,
		Source:    source,
		Sync:      sync,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Diagnosis == nil {
		return ErrMissingDiagnosisService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Source == nil {
		return ErrMissingSourceService
	}
	if p.Sync == nil {
		return ErrMissingSyncOrchestrator
	}
	return nil
}
