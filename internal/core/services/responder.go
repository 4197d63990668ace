package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
	"github.com/custodia-labs/bumpbook/internal/logger"
)

// Ensure ResponderService implements the interfaces.
var (
	_ driving.ChatService     = (*ResponderService)(nil)
	_ driven.PromptStoreAware = (*ResponderService)(nil)
)

// Fixed assistant replies.
const (
	NotConfiguredReply = "The assistant is not configured. Set an LLM provider with " +
		"`bumpbook settings llm` or the OPENAI_API_KEY / ANTHROPIC_API_KEY environment variables. " +
		"The Medications, Symptoms, Timeline and Nutrition views still work without it."

	ApologyReply = "Sorry, I couldn't reach the assistant just now. Please try again in a moment. " +
		"If this is about an urgent symptom, contact your healthcare provider or emergency services."
)

// Generation settings.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// Built-in prompts used when no prompt store is set or it cannot be read.
var defaultPrompts = map[string]string{
	driven.PromptPersona: "You are a warm, knowledgeable pregnancy information assistant. " +
		"You give clear, practical answers about pregnancy health, nutrition, symptoms and medication safety.",
	driven.PromptContext: "Use the following knowledge base context when it is relevant:\n\n" + driven.ContextPlaceholder,
	driven.PromptGrounding: "State whether your answer is based on the knowledge base context above " +
		"or on general knowledge. Always recommend consulting a doctor, midwife or pharmacist " +
		"before acting on medical information.",
}

// ResponderService answers questions grounded on retrieved sections.
type ResponderService struct {
	retriever  driving.RetrievalService
	llm        driven.LLMService
	store      driven.ConversationStore
	classifier driven.ProvenanceClassifier
	prompts    driven.PromptStore
	topK       int
	options    driven.ChatOptions
}

// NewResponderService creates a responder.
// The llm parameter is optional (can be nil); without it every reply is NotConfiguredReply.
// A nil classifier uses the prefix heuristic.
func NewResponderService(
	retriever driving.RetrievalService,
	llm driven.LLMService,
	store driven.ConversationStore,
	classifier driven.ProvenanceClassifier,
) *ResponderService {
	if classifier == nil {
		classifier = NewPrefixClassifier()
	}
	return &ResponderService{
		retriever:  retriever,
		llm:        llm,
		store:      store,
		classifier: classifier,
		topK:       domain.DefaultTopK,
		options: driven.ChatOptions{
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
	}
}

// SetPromptStore sets the store for customisable prompts.
func (s *ResponderService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Respond produces one assistant message for query and appends it to the conversation.
func (s *ResponderService) Respond(ctx context.Context, query string) (domain.ChatMessage, error) {
	logger.Section("Respond")

	var msg domain.ChatMessage
	if s.llm == nil {
		// No credential means no external call at all, retrieval included.
		logger.Debug("No LLM configured, skipping retrieval and generation")
		msg = domain.NewAssistantMessage(NotConfiguredReply, domain.ProvenanceError, nil)
	} else {
		retrieval := s.retriever.Retrieve(ctx, query, s.topK)
		sections := retrieval.Sections()
		sources := make([]string, len(sections))
		for i, section := range sections {
			sources[i] = section.ID
		}
		logger.Debug("Retrieved %d sections via %s", len(sections), retrieval.Method)

		reply, err := s.generate(ctx, query, sections)
		if err != nil {
			logger.Warn("Generation failed: %v", err)
			msg = domain.NewAssistantMessage(ApologyReply, domain.ProvenanceError, sources)
		} else {
			provenance := s.classifier.Classify(reply, sections)
			logger.Debug("Reply provenance: %s", provenance)
			msg = domain.NewAssistantMessage(reply, provenance, sources)
		}
	}

	if err := s.store.Append(ctx, msg); err != nil {
		return msg, fmt.Errorf("append reply: %w", err)
	}
	return msg, nil
}

// Ask appends the user message, then responds.
func (s *ResponderService) Ask(ctx context.Context, query string) (domain.ChatMessage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.ChatMessage{}, fmt.Errorf("empty question: %w", domain.ErrInvalidInput)
	}
	if err := s.store.Append(ctx, domain.NewUserMessage(query)); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("append question: %w", err)
	}
	return s.Respond(ctx, query)
}

// History returns the conversation so far.
func (s *ResponderService) History(ctx context.Context) ([]domain.ChatMessage, error) {
	return s.store.List(ctx)
}

// Reset clears the conversation.
func (s *ResponderService) Reset(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// generate sends the system instruction and the latest query only.
func (s *ResponderService) generate(ctx context.Context, query string, sections []domain.Section) (string, error) {
	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: s.SystemInstruction(sections)},
		{Role: driven.RoleUser, Content: query},
	}

	reply, err := s.llm.Chat(ctx, messages, s.options)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("empty reply: %w", domain.ErrLLMUnavailable)
	}
	return reply, nil
}

// SystemInstruction builds the persona, the optional context block and the
// grounding instruction.
func (s *ResponderService) SystemInstruction(sections []domain.Section) string {
	parts := []string{s.prompt(driven.PromptPersona)}

	if len(sections) > 0 {
		contents := make([]string, len(sections))
		for i, section := range sections {
			contents[i] = section.Content
		}
		block := strings.Join(contents, "\n\n")
		tmpl := s.prompt(driven.PromptContext)
		if strings.Contains(tmpl, driven.ContextPlaceholder) {
			parts = append(parts, strings.Replace(tmpl, driven.ContextPlaceholder, block, 1))
		} else {
			parts = append(parts, tmpl+"\n\n"+block)
		}
	}

	parts = append(parts, s.prompt(driven.PromptGrounding))
	return strings.Join(parts, "\n\n")
}

func (s *ResponderService) prompt(name string) string {
	if s.prompts != nil {
		if p, err := s.prompts.Load(name); err == nil && p != "" {
			return p
		}
	}
	return defaultPrompts[name]
}

// DefaultPrompts returns a copy of the built-in prompts, keyed by name.
func DefaultPrompts() map[string]string {
	out := make(map[string]string, len(defaultPrompts))
	for k, v := range defaultPrompts {
		out[k] = v
	}
	return out
}
