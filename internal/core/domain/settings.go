package domain

const unknownDescription = "Unknown"

// DiagnosisMode defines how much external machinery a diagnosis may use.
type DiagnosisMode string

// Available diagnosis modes.
const (
	// ModeOffline diagnoses from the local dataset only.
	ModeOffline DiagnosisMode = "offline"

	// ModeAssisted adds identity resolution and hazard lookups
	// against remote databases.
	ModeAssisted DiagnosisMode = "assisted"

	// ModeDeep adds LLM summaries and literature research.
	ModeDeep DiagnosisMode = "deep"
)

// IsValid returns true if the diagnosis mode is recognised.
func (m DiagnosisMode) IsValid() bool {
	switch m {
	case ModeOffline, ModeAssisted, ModeDeep:
		return true
	default:
		return false
	}
}

// RequiresNetwork returns true if this mode calls remote databases.
func (m DiagnosisMode) RequiresNetwork() bool {
	return m == ModeAssisted || m == ModeDeep
}

// RequiresLLM returns true if this mode needs an LLM provider.
func (m DiagnosisMode) RequiresLLM() bool {
	return m == ModeDeep
}

// String returns the string representation.
func (m DiagnosisMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m DiagnosisMode) Description() string {
	switch m {
	case ModeOffline:
		return "Offline (local dataset only)"
	case ModeAssisted:
		return "Assisted (remote identity + hazard lookups)"
	case ModeDeep:
		return "Deep (assisted + LLM research)"
	default:
		return unknownDescription
	}
}

// AllDiagnosisModes returns every diagnosis mode, least capable first.
func AllDiagnosisModes() []DiagnosisMode {
	return []DiagnosisMode{ModeOffline, ModeAssisted, ModeDeep}
}

// AIProvider identifies an AI service provider for LLM features.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local models)"
	case AIProviderOpenAI:
		return "OpenAI (cloud API)"
	case AIProviderAnthropic:
		return "Anthropic (cloud API)"
	default:
		return unknownDescription
	}
}

// AllAIProviders returns every supported AI provider, local first.
func AllAIProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic}
}

// DefaultLLMModels returns the default model for each provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible APIs).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// LiteratureSettings holds literature search configuration.
type LiteratureSettings struct {
	// APIKey is the Google API key.
	APIKey string

	// EngineID is the Programmable Search Engine identifier.
	EngineID string
}

// IsConfigured returns true if literature search is set up.
func (l LiteratureSettings) IsConfigured() bool {
	return l.APIKey != "" && l.EngineID != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Mode is the default diagnosis mode.
	Mode DiagnosisMode

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Literature holds literature search settings.
	Literature LiteratureSettings

	// GitHubToken authenticates mirror dataset sources.
	GitHubToken string
}

// DefaultAppSettings returns settings with sensible defaults.
// LLM and literature search are left unconfigured; users set them up
// via the settings command.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Mode: ModeOffline,
	}
}
