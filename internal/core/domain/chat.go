package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who wrote a chat message.
type Role string

// Chat roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Provenance labels where an assistant reply came from.
type Provenance string

// Provenance values.
const (
	// ProvenanceGrounded means the reply appears to use retrieved sections.
	ProvenanceGrounded Provenance = "grounded"

	// ProvenanceGeneral means the reply rests on the model's general knowledge.
	ProvenanceGeneral Provenance = "general"

	// ProvenanceError means no reply could be produced.
	ProvenanceError Provenance = "error"
)

// String returns the string representation.
func (p Provenance) String() string {
	return string(p)
}

// Label returns a short human-readable label.
func (p Provenance) Label() string {
	switch p {
	case ProvenanceGrounded:
		return "From knowledge base"
	case ProvenanceGeneral:
		return "General knowledge"
	case ProvenanceError:
		return "Error"
	default:
		return unknownDescription
	}
}

// ChatMessage is one turn of the in-memory conversation.
type ChatMessage struct {
	ID   string
	Role Role
	Text string

	// Provenance is set on assistant messages only.
	Provenance Provenance

	// Sources are the IDs of the sections retrieved for this reply.
	Sources []string

	CreatedAt time.Time
}

// NewUserMessage creates a user turn.
func NewUserMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage creates an assistant turn with its provenance.
func NewAssistantMessage(text string, provenance Provenance, sources []string) ChatMessage {
	return ChatMessage{
		ID:         uuid.New().String(),
		Role:       RoleAssistant,
		Text:       text,
		Provenance: provenance,
		Sources:    sources,
		CreatedAt:  time.Now(),
	}
}
