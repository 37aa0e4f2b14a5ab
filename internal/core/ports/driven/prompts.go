package driven

// PromptStore provides access to LLM prompt templates.
// Prompts may be loaded from files, embedded defaults, or other sources.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns an error if the prompt doesn't exist.
	Load(name string) (string, error)

	// Reload refreshes prompts from the underlying source.
	// Useful for picking up user edits without restarting.
	Reload()

	// Dir returns the prompt directory path (empty for non-file stores).
	Dir() string
}

// Well-known prompt names.
const (
	// PromptQueryRewrite expands search queries with chemical synonyms
	// and name variants for better recall.
	PromptQueryRewrite = "query_rewrite"

	// PromptSummarise creates summaries of regulatory content.
	PromptSummarise = "summarise"

	// PromptResearchSystem is the system prompt for the alternatives
	// research conversation.
	PromptResearchSystem = "research_system"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Adapters implementing this interface support runtime prompt customisation
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// Pass nil to revert to built-in defaults.
	SetPromptStore(store PromptStore)
}
