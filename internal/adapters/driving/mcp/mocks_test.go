package mcp

import (
	"context"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	retrieval domain.Retrieval
	lastQuery string
	lastTopK  int
}

func (m *mockRetrievalService) Retrieve(_ context.Context, query string, topK int) domain.Retrieval {
	m.lastQuery = query
	m.lastTopK = topK
	r := m.retrieval
	r.Query = query
	return r
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	reply    domain.ChatMessage
	err      error
	question string
}

func (m *mockChatService) Respond(_ context.Context, _ string) (domain.ChatMessage, error) {
	return m.reply, m.err
}

func (m *mockChatService) Ask(_ context.Context, query string) (domain.ChatMessage, error) {
	m.question = query
	return m.reply, m.err
}

func (m *mockChatService) History(_ context.Context) ([]domain.ChatMessage, error) {
	return nil, nil
}

func (m *mockChatService) Reset(_ context.Context) error {
	return nil
}

// mockLookupService is a mock implementation of driving.LookupService.
type mockLookupService struct {
	medications []domain.MedicationMatch
	symptoms    []domain.SymptomMatch
	emergency   []domain.SymptomMatch
	weeks       map[int][]domain.TimelineEntry
}

func (m *mockLookupService) CheckMedicationSafety(_ string) []domain.MedicationMatch {
	return m.medications
}

func (m *mockLookupService) LookupSymptom(_ string) []domain.SymptomMatch {
	return m.symptoms
}

func (m *mockLookupService) WeekInfo(week int) []domain.TimelineEntry {
	return m.weeks[week]
}

func (m *mockLookupService) EmergencySymptoms() []domain.SymptomMatch {
	return m.emergency
}

func (m *mockLookupService) Timeline() []domain.TimelineEntry { return nil }

func (m *mockLookupService) Medications() []domain.MedicationGroup { return nil }

func (m *mockLookupService) Nutrition() domain.NutritionGuide { return domain.NutritionGuide{} }

func (m *mockLookupService) FoodSafety() domain.FoodSafety { return domain.FoodSafety{} }

func (m *mockLookupService) MorningSickness() domain.MorningSickness {
	return domain.MorningSickness{}
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	sections []domain.Section
}

func (m *mockIndexService) Build(_ context.Context) domain.IndexStatus { return m.Status() }

func (m *mockIndexService) Ready() bool { return false }

func (m *mockIndexService) Sections() []domain.Section { return m.sections }

func (m *mockIndexService) Status() domain.IndexStatus {
	return domain.IndexStatus{State: domain.IndexDisabled, Sections: len(m.sections)}
}
