package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

var errTransient = errors.New("connection reset by peer")

// mockEmbeddingService returns fixed vectors per text.
type mockEmbeddingService struct {
	mu       sync.Mutex
	vectors  map[string][]float32
	fallback []float32
	failOn   map[string]bool
	err      error
	calls    int
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.failOn[text] {
		return nil, errTransient
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	if m.fallback != nil {
		return m.fallback, nil
	}
	return []float32{0, 0, 1}, nil
}

func (m *mockEmbeddingService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockEmbeddingService) Dimensions() int { return 3 }
func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error { return nil }

// mockLLMService records the messages it was sent.
type mockLLMService struct {
	reply    string
	err      error
	calls    int
	messages []driven.ChatMessage
	options  driven.ChatOptions
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls++
	m.messages = messages
	m.options = opts
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error { return nil }

// mockEmbeddingCache is a map-backed cache with injectable failures.
type mockEmbeddingCache struct {
	mu     sync.Mutex
	data   map[string][]float32
	getErr error
	putErr error
	puts   int
}

func newMockEmbeddingCache() *mockEmbeddingCache {
	return &mockEmbeddingCache{data: make(map[string][]float32)}
}

func (m *mockEmbeddingCache) Get(_ context.Context, key domain.EmbeddingKey) ([]float32, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key.String()]
	return v, ok, nil
}

func (m *mockEmbeddingCache) Put(_ context.Context, key domain.EmbeddingKey, v []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key.String()] = v
	return nil
}

func (m *mockEmbeddingCache) Close() error { return nil }

// mockKnowledgeSource returns a fixed document or error.
type mockKnowledgeSource struct {
	doc *domain.KnowledgeDocument
	err error
}

func (m *mockKnowledgeSource) Fetch(_ context.Context) (*domain.KnowledgeDocument, error) {
	return m.doc, m.err
}

func (m *mockKnowledgeSource) Location() string { return "mock://knowledge" }

// mockPromptStore serves prompts from a map.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (m *mockPromptStore) Reload() {}

// stubIndex is a fixed SectionIndex.
type stubIndex struct {
	ready    bool
	sections []domain.Section
}

func (s *stubIndex) Ready() bool { return s.ready }
func (s *stubIndex) Sections() []domain.Section { return s.sections }

// staticDocument is a fixed DocumentProvider.
type staticDocument struct {
	doc *domain.KnowledgeDocument
}

func (s staticDocument) Document() *domain.KnowledgeDocument { return s.doc }

// fixtureDocument is a small but complete knowledge document.
func fixtureDocument() *domain.KnowledgeDocument {
	return &domain.KnowledgeDocument{
		Nutrition: domain.NutritionGuide{
			DailyNeeds: []domain.Nutrient{
				{Name: "Protein", Amount: "71", Unit: "g", Category: "macronutrient"},
				{Name: "Folic acid", Amount: "600", Unit: "mcg", Category: "vitamin"},
			},
			WeightGain: []domain.WeightGain{
				{BMICategory: "Underweight", BMIRange: "< 18.5", TotalGain: "28-40 lbs"},
				{BMICategory: "Normal", BMIRange: "18.5-24.9", TotalGain: "25-35 lbs"},
			},
		},
		FoodSafety: domain.FoodSafety{
			UnsafeSeafood: []string{"Shark", "Swordfish", "King mackerel"},
			Avoid: []domain.AvoidItem{
				{Item: "Raw eggs", Reason: "salmonella risk"},
				{Item: "Unpasteurized cheese", Reason: "listeria risk"},
			},
		},
		MorningSickness: domain.MorningSickness{
			Eat:   []string{"Crackers", "Ginger tea"},
			Avoid: []string{"Greasy food"},
			Tips:  []string{"Eat small frequent meals"},
		},
		Timeline: []domain.TimelineEntry{
			{
				Weeks:     "1-4",
				Trimester: "First trimester",
				Title:     "Conception and implantation",
				Symptoms:  []domain.TimelineSymptom{{Symptom: "Fatigue", Status: "common"}},
			},
			{
				Weeks:     "5-8",
				Trimester: "First trimester",
				Title:     "Heartbeat begins",
				Symptoms: []domain.TimelineSymptom{
					{Symptom: "Nausea", Status: "peaking"},
					{Symptom: "Breast tenderness", Status: "common"},
				},
				Exercise: &domain.Exercise{
					Name:     "Walking",
					Benefits: "improves circulation",
					Steps:    []string{"Warm up for 5 minutes", "Walk briskly for 20 minutes"},
				},
			},
		},
		Symptoms: []domain.SymptomCategory{
			{Category: "Bleeding", Symptoms: []domain.Symptom{
				{Sign: "Heavy bleeding", Urgency: "Immediately", Action: "Go to the emergency room", Severity: domain.SeverityHigh},
				{Sign: "Light spotting", Urgency: "Within a day", Action: "Call your midwife", Severity: domain.SeverityLow},
			}},
			{Category: "Headache", Symptoms: []domain.Symptom{
				{Sign: "Severe headache with vision changes", Urgency: "Immediately", Action: "Call emergency services", Severity: domain.SeverityHigh},
				{Sign: "Mild headache", Urgency: "If persistent", Action: "Rest and hydrate", Severity: domain.SeverityMedium},
			}},
		},
		Medications: []domain.MedicationGroup{
			{Condition: "Pain relief", Medications: []domain.Medication{
				{Drug: "Acetaminophen", Brand: "Tylenol", Marker: "safe", SafetyLevel: "Generally safe"},
				{Drug: "Ibuprofen", Brand: "Advil", Marker: "avoid", SafetyLevel: "Avoid, especially after 20 weeks", Note: "Linked to kidney problems in the baby"},
			}},
			{Condition: "Allergies", Medications: []domain.Medication{
				{Drug: "Loratadine", Brand: "Claritin", Marker: "safe", SafetyLevel: "Generally safe"},
			}},
		},
	}
}
