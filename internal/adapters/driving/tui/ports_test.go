package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/services"
)

type staticDocument struct {
	doc *domain.KnowledgeDocument
}

func (s staticDocument) Document() *domain.KnowledgeDocument {
	return s.doc
}

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	AskFunc func(ctx context.Context, query string) (domain.ChatMessage, error)
}

func (m *MockChatService) Respond(ctx context.Context, query string) (domain.ChatMessage, error) {
	return m.Ask(ctx, query)
}

func (m *MockChatService) Ask(ctx context.Context, query string) (domain.ChatMessage, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, query)
	}
	return domain.NewAssistantMessage("reply", domain.ProvenanceGeneral, nil), nil
}

func (m *MockChatService) History(_ context.Context) ([]domain.ChatMessage, error) {
	return nil, nil
}

func (m *MockChatService) Reset(_ context.Context) error {
	return nil
}

// MockIndexService implements driving.IndexService for testing.
type MockIndexService struct {
	ready    bool
	sections []domain.Section
	builds   int
}

func (m *MockIndexService) Build(_ context.Context) domain.IndexStatus {
	m.builds++
	m.ready = true
	return m.Status()
}

func (m *MockIndexService) Ready() bool {
	return m.ready
}

func (m *MockIndexService) Sections() []domain.Section {
	return m.sections
}

func (m *MockIndexService) Status() domain.IndexStatus {
	state := domain.IndexIdle
	if m.ready {
		state = domain.IndexReady
	}
	return domain.IndexStatus{State: state, Sections: len(m.sections), Embedded: len(m.sections)}
}

func testLookup() *services.LookupService {
	return services.NewLookupService(staticDocument{doc: &domain.KnowledgeDocument{
		Medications: []domain.MedicationGroup{{
			Condition:   "Pain relief",
			Medications: []domain.Medication{{Drug: "Acetaminophen", Brand: "Tylenol", Marker: "safe", SafetyLevel: "Generally safe"}},
		}},
		Timeline: []domain.TimelineEntry{{Weeks: "1-4", Trimester: "first", Title: "Conception"}},
	}})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing lookup", &Ports{Chat: &MockChatService{}}, ErrMissingLookupService},
		{"lookup only", &Ports{Lookup: testLookup()}, nil},
		{
			"all ports",
			&Ports{Lookup: testLookup(), Chat: &MockChatService{}, Index: &MockIndexService{}},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
