// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDiagnose is the chemical diagnosis view.
	ViewDiagnose
	// ViewCompare is the cross-market comparison view.
	ViewCompare
	// ViewSearch is the regulation text search view.
	ViewSearch
	// ViewHistory is the diagnosis history view.
	ViewHistory
	// ViewSources is the source management view.
	ViewSources
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDiagnose:
		return "diagnose"
	case ViewCompare:
		return "compare"
	case ViewSearch:
		return "search"
	case ViewHistory:
		return "history"
	case ViewSources:
		return "sources"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// DiagnosisCompleted carries a finished diagnosis back to the model.
type DiagnosisCompleted struct {
	Diagnosis *domain.Diagnosis
	Err       error
}

// ComparisonCompleted carries a finished market comparison back to the model.
type ComparisonCompleted struct {
	Comparison *domain.MarketComparison
	Err        error
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Results []domain.SearchResult
	Err     error
}

// HistoryLoaded carries the diagnosis history from the service.
type HistoryLoaded struct {
	Diagnoses []domain.Diagnosis
	Err       error
}

// SourcesLoaded carries the list of sources from the service.
type SourcesLoaded struct {
	Sources []domain.Source
	Err     error
}

// SyncFinished signals a source sync completed.
type SyncFinished struct {
	Slug      string
	Unchanged bool
	Err       error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
