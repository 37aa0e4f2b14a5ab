package driven

import (
	"context"

	"github.com/greenchem-labs/regwatch-cli/internal/core/domain"
)

// LLMService provides language model operations for comparison summaries
// and alternatives research. This is an optional service - when nil,
// features degrade gracefully to dataset-only output.
//
// Implementations may include:
//   - OpenAI (GPT-4 family)
//   - Anthropic (Claude family)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn conversation.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// RewriteQuery expands or rewrites a search query for better recall.
	// Used to add synonyms and chemical name variants.
	RewriteQuery(ctx context.Context, query string) (string, error)

	// Summarise creates a summary of regulatory content.
	Summarise(ctx context.Context, content string, maxLength int) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to deep mode.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// AIConfigValidator validates LLM provider configurations by creating
// a service and pinging it. Used when settings change, so bad
// credentials surface immediately instead of at first diagnosis.
type AIConfigValidator interface {
	// ValidateLLM validates an LLM configuration.
	ValidateLLM(config *domain.LLMSettings) error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
