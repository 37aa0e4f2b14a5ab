package services

import (
	"context"
	"fmt"
	"time"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driven"
	"github.com/greenchem-labs/regwatch-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDiagnosisMode = "diagnosis.mode"
	keyLLMProvider   = "llm.provider"
	keyLLMModel      = "llm.model"
	keyLLMBaseURL    = "llm.base_url"
	keyLLMAPIKey     = "llm.api_key"
	keyLitAPIKey     = "literature.api_key"
	keyLitEngineID   = "literature.engine_id"
	keyGitHubToken   = "github.token"
)

// Service names accepted by SetAPIKey/GetAPIKey.
const (
	ServiceLLM        = "llm"
	ServiceLiterature = "literature"
	ServiceGitHub     = "github"
)

// apiKeyTargets maps a service name to its config key.
var apiKeyTargets = map[string]string{
	ServiceLLM:        keyLLMAPIKey,
	ServiceLiterature: keyLitAPIKey,
	ServiceGitHub:     keyGitHubToken,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get(_ context.Context) (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Mode: s.getMode(defaults.Mode),
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Literature: domain.LiteratureSettings{
			APIKey:   s.configStore.GetString(keyLitAPIKey),
			EngineID: s.configStore.GetString(keyLitEngineID),
		},
		GitHubToken: s.configStore.GetString(keyGitHubToken),
	}

	return settings, nil
}

// GetDiagnosisMode returns the configured diagnosis mode.
func (s *SettingsService) GetDiagnosisMode(_ context.Context) domain.DiagnosisMode {
	return s.getMode(domain.DefaultAppSettings().Mode)
}

// SetDiagnosisMode validates and persists the diagnosis mode.
func (s *SettingsService) SetDiagnosisMode(ctx context.Context, mode domain.DiagnosisMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: invalid diagnosis mode %q", domain.ErrInvalidInput, mode)
	}

	// Deep mode is useless without a configured LLM; refuse rather than
	// fail at diagnosis time.
	if mode.RequiresLLM() {
		settings, err := s.Get(ctx)
		if err != nil {
			return err
		}
		if !settings.LLM.IsConfigured() {
			return fmt.Errorf(
				"%w: mode %q requires an LLM provider, run 'regwatch settings' first",
				domain.ErrLLMUnavailable, mode,
			)
		}
	}

	return s.configStore.Set(keyDiagnosisMode, mode.String())
}

// GetAIProvider returns the configured AI provider.
func (s *SettingsService) GetAIProvider(_ context.Context) domain.AIProvider {
	return s.getProvider(keyLLMProvider, "")
}

// SetAIProvider validates and persists the AI provider, filling in the
// provider's default model and base URL where not already set.
func (s *SettingsService) SetAIProvider(_ context.Context, provider domain.AIProvider) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid AI provider %q", domain.ErrInvalidInput, provider)
	}

	if err := s.configStore.Set(keyLLMProvider, provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}

	if s.configStore.GetString(keyLLMModel) == "" {
		if model, ok := domain.DefaultLLMModels()[provider]; ok {
			if err := s.configStore.Set(keyLLMModel, model); err != nil {
				return fmt.Errorf("save llm model: %w", err)
			}
		}
	}

	if provider.IsLocal() {
		if s.configStore.GetString(keyLLMBaseURL) == "" {
			if err := s.configStore.Set(keyLLMBaseURL, "http://localhost:11434"); err != nil {
				return fmt.Errorf("save llm base_url: %w", err)
			}
		}
	} else {
		// Cloud providers use their well-known endpoints.
		if err := s.configStore.Set(keyLLMBaseURL, ""); err != nil {
			return fmt.Errorf("save llm base_url: %w", err)
		}
	}

	return nil
}

// SetAPIKey persists the API key for a known service.
func (s *SettingsService) SetAPIKey(_ context.Context, service, key string) error {
	configKey, ok := apiKeyTargets[service]
	if !ok {
		return fmt.Errorf("%w: unknown service %q", domain.ErrInvalidInput, service)
	}
	return s.configStore.Set(configKey, key)
}

// GetAPIKey returns the stored API key for a service, or empty string.
func (s *SettingsService) GetAPIKey(_ context.Context, service string) string {
	configKey, ok := apiKeyTargets[service]
	if !ok {
		return ""
	}
	return s.configStore.GetString(configKey)
}

// SetLiteratureEngine persists the Google Programmable Search Engine ID
// used for alternatives research.
func (s *SettingsService) SetLiteratureEngine(_ context.Context, engineID string) error {
	return s.configStore.Set(keyLitEngineID, engineID)
}

// Validate checks if current settings are valid for the configured mode.
func (s *SettingsService) Validate(ctx context.Context) error {
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}

	if !settings.Mode.IsValid() {
		return fmt.Errorf("invalid diagnosis mode: %s", settings.Mode)
	}

	if settings.Mode.RequiresLLM() && !settings.LLM.IsConfigured() {
		return fmt.Errorf(
			"mode %q requires an LLM provider to be configured",
			settings.Mode.Description(),
		)
	}

	return nil
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig(ctx context.Context) error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// GetSchedulerConfig returns the scheduler configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	defaults := domain.DefaultSchedulerConfig()

	// Master switch
	if _, exists := s.configStore.Get("scheduler.enabled"); exists {
		defaults.Enabled = s.configStore.GetBool("scheduler.enabled")
	}

	// Staleness window (duration string like "720h")
	if age := s.configStore.GetString("scheduler.max_source_age"); age != "" {
		if d, err := time.ParseDuration(age); err == nil {
			defaults.MaxSourceAge = d
		}
	}

	// Per-task config
	// Map from task ID to config key (underscore version for TOML)
	taskKeys := map[string]string{
		domain.TaskIDFreshnessCheck: "freshness_check",
		domain.TaskIDHistoryPrune:   "history_prune",
	}

	for taskID, configKey := range taskKeys {
		prefix := "scheduler." + configKey + "."

		taskCfg := defaults.TaskConfigs[taskID]

		if _, exists := s.configStore.Get(prefix + "enabled"); exists {
			taskCfg.Enabled = s.configStore.GetBool(prefix + "enabled")
		}

		if interval := s.configStore.GetString(prefix + "interval"); interval != "" {
			if d, err := time.ParseDuration(interval); err == nil {
				taskCfg.Interval = d
			}
		}

		defaults.TaskConfigs[taskID] = taskCfg
	}

	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMode(defaultVal domain.DiagnosisMode) domain.DiagnosisMode {
	val := s.configStore.GetString(keyDiagnosisMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.DiagnosisMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
