package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the question or topic to find knowledge sections for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of sections to return (default 3)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Method  string          `json:"method"`
	Outcome string          `json:"outcome"`
	Results []SectionOutput `json:"results"`
	Count   int             `json:"count"`
}

// SectionOutput represents one knowledge section.
type SectionOutput struct {
	ID      string  `json:"id"`
	Score   float64 `json:"score,omitempty"`
	Content string  `json:"content"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the pregnancy question to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer     string   `json:"answer"`
	Provenance string   `json:"provenance"`
	Sources    []string `json:"sources,omitempty"`
}

// MedicationInput is the input schema for the medication_safety tool.
type MedicationInput struct {
	Name string `json:"name" jsonschema:"drug or brand name, matched case-insensitively as a substring"`
}

// MedicationOutput is the output schema for the medication_safety tool.
type MedicationOutput struct {
	Matches []MedicationMatchOutput `json:"matches"`
	Count   int                     `json:"count"`
}

// MedicationMatchOutput represents one matching medication.
type MedicationMatchOutput struct {
	Condition   string `json:"condition"`
	Drug        string `json:"drug"`
	Brand       string `json:"brand,omitempty"`
	Marker      string `json:"marker"`
	SafetyLevel string `json:"safety_level"`
	Note        string `json:"note,omitempty"`
}

// SymptomInput is the input schema for the lookup_symptom tool.
type SymptomInput struct {
	Sign string `json:"sign" jsonschema:"symptom sign, matched case-insensitively as a substring"`
}

// EmergencyInput is the input schema for the emergency_symptoms tool.
type EmergencyInput struct{}

// SymptomOutput is the output schema for the symptom tools.
type SymptomOutput struct {
	Symptoms []SymptomMatchOutput `json:"symptoms"`
	Count    int                  `json:"count"`
}

// SymptomMatchOutput represents one symptom.
type SymptomMatchOutput struct {
	Category string `json:"category"`
	Sign     string `json:"sign"`
	Urgency  string `json:"urgency"`
	Action   string `json:"action"`
	Severity string `json:"severity"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Find the pregnancy knowledge sections most relevant to a query",
	}, s.handleRetrieve)

	if s.ports.Chat != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Answer a pregnancy question grounded on the knowledge base",
		}, s.handleAsk)
	}

	if s.ports.Lookup != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "medication_safety",
			Description: "Check whether a medication is considered safe during pregnancy",
		}, s.handleMedicationSafety)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "lookup_symptom",
			Description: "Look up a pregnancy symptom, its urgency and the recommended action",
		}, s.handleLookupSymptom)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "emergency_symptoms",
			Description: "List the high-severity symptoms that need urgent medical attention",
		}, s.handleEmergencySymptoms)
	}
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultTopK
	}

	retrieval := s.ports.Retrieval.Retrieve(ctx, input.Query, limit)

	output := RetrieveOutput{
		Method:  retrieval.Method.String(),
		Outcome: retrieval.Outcome.String(),
		Results: make([]SectionOutput, len(retrieval.Results)),
		Count:   len(retrieval.Results),
	}
	for i, r := range retrieval.Results {
		output.Results[i] = SectionOutput{
			ID:      r.Section.ID,
			Score:   r.Score,
			Content: r.Section.Content,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Chat == nil {
		return nil, AskOutput{}, ErrMissingChatService
	}

	msg, err := s.ports.Chat.Ask(ctx, strings.TrimSpace(input.Question))
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:     msg.Text,
		Provenance: msg.Provenance.String(),
		Sources:    msg.Sources,
	}, nil
}

// handleMedicationSafety handles the medication_safety tool invocation.
func (s *Server) handleMedicationSafety(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MedicationInput,
) (*mcp.CallToolResult, MedicationOutput, error) {
	if s.ports.Lookup == nil {
		return nil, MedicationOutput{}, ErrMissingLookupService
	}

	matches := s.ports.Lookup.CheckMedicationSafety(input.Name)
	output := MedicationOutput{
		Matches: make([]MedicationMatchOutput, len(matches)),
		Count:   len(matches),
	}
	for i, m := range matches {
		output.Matches[i] = MedicationMatchOutput{
			Condition:   m.Condition,
			Drug:        m.Medication.Drug,
			Brand:       m.Medication.Brand,
			Marker:      m.Medication.Marker,
			SafetyLevel: m.Medication.SafetyLevel,
			Note:        m.Medication.Note,
		}
	}
	return nil, output, nil
}

// handleLookupSymptom handles the lookup_symptom tool invocation.
func (s *Server) handleLookupSymptom(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SymptomInput,
) (*mcp.CallToolResult, SymptomOutput, error) {
	if s.ports.Lookup == nil {
		return nil, SymptomOutput{}, ErrMissingLookupService
	}
	return nil, symptomOutput(s.ports.Lookup.LookupSymptom(input.Sign)), nil
}

// handleEmergencySymptoms handles the emergency_symptoms tool invocation.
func (s *Server) handleEmergencySymptoms(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmergencyInput,
) (*mcp.CallToolResult, SymptomOutput, error) {
	if s.ports.Lookup == nil {
		return nil, SymptomOutput{}, ErrMissingLookupService
	}
	return nil, symptomOutput(s.ports.Lookup.EmergencySymptoms()), nil
}

func symptomOutput(matches []domain.SymptomMatch) SymptomOutput {
	output := SymptomOutput{
		Symptoms: make([]SymptomMatchOutput, len(matches)),
		Count:    len(matches),
	}
	for i, m := range matches {
		output.Symptoms[i] = SymptomMatchOutput{
			Category: m.Category,
			Sign:     m.Symptom.Sign,
			Urgency:  m.Symptom.Urgency,
			Action:   m.Symptom.Action,
			Severity: m.Symptom.Severity.String(),
		}
	}
	return output
}
