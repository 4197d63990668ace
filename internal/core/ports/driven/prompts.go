package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names return an error; known names fall back to built-in defaults.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptPersona is the fixed persona statement that opens every system instruction.
	// This prompt has no format placeholders.
	PromptPersona = "persona"

	// PromptContext labels the knowledge-base context block.
	// ContextPlaceholder marks where the section contents go; without it they
	// are appended after the template.
	PromptContext = "context"

	// PromptGrounding asks the model to say whether its answer rests on the
	// context and to recommend professional consultation.
	// This prompt has no format placeholders.
	PromptGrounding = "grounding"
)

// ContextPlaceholder is replaced with the section contents in the context prompt.
// Any other text in the template, % signs included, is kept as written.
const ContextPlaceholder = "{{context}}"

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service uses built-in default prompts.
	SetPromptStore(store PromptStore)
}
