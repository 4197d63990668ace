package medications

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/services"
)

type staticDocument struct {
	doc *domain.KnowledgeDocument
}

func (s staticDocument) Document() *domain.KnowledgeDocument {
	return s.doc
}

func testLookup() *services.LookupService {
	return services.NewLookupService(staticDocument{doc: &domain.KnowledgeDocument{
		Medications: []domain.MedicationGroup{
			{
				Condition: "Pain relief",
				Medications: []domain.Medication{
					{Drug: "Acetaminophen", Brand: "Tylenol", Marker: "safe", SafetyLevel: "Generally safe"},
					{Drug: "Ibuprofen", Brand: "Advil", Marker: "avoid", SafetyLevel: "Avoid", Note: "Especially after week 20"},
				},
			},
			{
				Condition: "Allergies",
				Medications: []domain.Medication{
					{Drug: "Loratadine", Brand: "Claritin", Marker: "safe", SafetyLevel: "Generally safe"},
				},
			},
		},
	}})
}

func typeText(v *View, text string) *View {
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return v
}

func TestNewView_ListsAllMedications(t *testing.T) {
	v := NewView(nil, nil, testLookup())

	require.NotNil(t, v)
	assert.Empty(t, v.Query())
	assert.Equal(t, 3, v.Count())

	view := v.View()
	assert.Contains(t, view, "Pain relief")
	assert.Contains(t, view, "Allergies")
	assert.Contains(t, view, "Acetaminophen (Tylenol)")
	assert.Contains(t, view, "Especially after week 20")
}

func TestView_FiltersAsYouType(t *testing.T) {
	v := NewView(nil, nil, testLookup())

	v = typeText(v, "TYLEN")

	assert.Equal(t, "TYLEN", v.Query())
	assert.Equal(t, 1, v.Count())
	view := v.View()
	assert.Contains(t, view, `1 matches for "TYLEN"`)
	assert.Contains(t, view, "[safe]")
	assert.NotContains(t, view, "Loratadine")
}

func TestView_NoMatch(t *testing.T) {
	v := typeText(NewView(nil, nil, testLookup()), "thalidomide")

	assert.Equal(t, 0, v.Count())
	assert.Contains(t, v.View(), `No medications match "thalidomide"`)
}

func TestView_ClearingFilterListsAll(t *testing.T) {
	v := typeText(NewView(nil, nil, testLookup()), "a")
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Empty(t, v.Query())
	assert.Equal(t, 3, v.Count())
}

func TestView_NilLookupService(t *testing.T) {
	v := NewView(nil, nil, nil)

	assert.Contains(t, v.View(), "lookups unavailable")
}

func TestView_EmptyDocument(t *testing.T) {
	v := NewView(nil, nil, services.NewLookupService(nil))

	assert.Contains(t, v.View(), "No medications in the knowledge base.")
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil, testLookup())
	v, cmd := v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, v.Ready())
}

func TestView_ScrollKeysDoNotType(t *testing.T) {
	v := NewView(nil, nil, testLookup())
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})

	assert.Empty(t, v.Query())
	assert.NotEmpty(t, v.Help())
}
