package driving

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// SettingsService manages user-facing application settings.
type SettingsService interface {
	// Get retrieves the full current application settings.
	Get(ctx context.Context) (*domain.AppSettings, error)

	// GetDiagnosisMode returns the configured diagnosis mode.
	GetDiagnosisMode(ctx context.Context) domain.DiagnosisMode

	// SetDiagnosisMode validates and persists the diagnosis mode.
	SetDiagnosisMode(ctx context.Context, mode domain.DiagnosisMode) error

	// GetAIProvider returns the configured AI provider.
	GetAIProvider(ctx context.Context) domain.AIProvider

	// SetAIProvider validates and persists the AI provider.
	SetAIProvider(ctx context.Context, provider domain.AIProvider) error

	// SetAPIKey persists the API key for a provider or external service.
	SetAPIKey(ctx context.Context, service, key string) error

	// GetAPIKey returns the stored API key for a service, or empty string.
	GetAPIKey(ctx context.Context, service string) string

	// SetLiteratureEngine persists the programmable search engine ID
	// used by literature search.
	SetLiteratureEngine(ctx context.Context, engineID string) error

	// Validate checks that the configured mode has the providers it needs.
	Validate(ctx context.Context) error
}
