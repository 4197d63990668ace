// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - KnowledgeSource: Fetches the knowledge document
//   - ConversationStore: In-memory chat history
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Without it, retrieval uses keyword matching only.
//   - LLMService: Without it, the responder replies "not configured".
//   - EmbeddingCache: Without it, every build re-embeds every section.
//   - PromptStore: Without it, built-in prompts are used.
//   - ProvenanceClassifier: Without it, the prefix heuristic is used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
