package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

func sectionIDs(sections []domain.Section) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

func TestBuildSections_OrderAndIDs(t *testing.T) {
	sections, problems := BuildSections(fixtureDocument())

	assert.Empty(t, problems)
	assert.Equal(t, []string{
		"nutrition-daily",
		"nutrition-weight",
		"food-safety",
		"morning-sickness",
		"timeline-1-4",
		"timeline-5-8",
		"symptom-bleeding-heavy-bleeding",
		"symptom-bleeding-light-spotting",
		"symptom-headache-severe-headache-with-vision-changes",
		"symptom-headache-mild-headache",
		"medication-pain-relief-acetaminophen",
		"medication-pain-relief-ibuprofen",
		"medication-allergies-loratadine",
	}, sectionIDs(sections))

	for _, s := range sections {
		assert.False(t, s.HasEmbedding(), s.ID)
		assert.NotEmpty(t, s.Content, s.ID)
	}
}

func TestBuildSections_Deterministic(t *testing.T) {
	first, _ := BuildSections(fixtureDocument())
	second, _ := BuildSections(fixtureDocument())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Content, second[i].Content)
	}
}

func TestBuildSections_Content(t *testing.T) {
	sections, _ := BuildSections(fixtureDocument())
	byID := make(map[string]string, len(sections))
	for _, s := range sections {
		byID[s.ID] = s.Content
	}

	assert.Equal(t,
		"Daily nutritional requirements during pregnancy: Protein: 71 g (macronutrient), Folic acid: 600 mcg (vitamin).",
		byID["nutrition-daily"])
	assert.Equal(t,
		"Recommended total weight gain during pregnancy by pre-pregnancy BMI: "+
			"Underweight (BMI < 18.5): 28-40 lbs, Normal (BMI 18.5-24.9): 25-35 lbs.",
		byID["nutrition-weight"])
	assert.Equal(t,
		"Food safety during pregnancy. Unsafe seafood: Shark, Swordfish, King mackerel. "+
			"Also avoid: Raw eggs (salmonella risk), Unpasteurized cheese (listeria risk).",
		byID["food-safety"])
	assert.Equal(t,
		"Morning sickness relief during pregnancy. Foods that help: Crackers, Ginger tea. "+
			"Foods to avoid: Greasy food. Tips: Eat small frequent meals.",
		byID["morning-sickness"])
	assert.Equal(t,
		"Pregnancy weeks 5-8 (First trimester): Heartbeat begins. "+
			"Common symptoms: Nausea (peaking), Breast tenderness (common). "+
			"Recommended exercise: Walking. Benefits: improves circulation. "+
			"Steps: 1. Warm up for 5 minutes, 2. Walk briskly for 20 minutes.",
		byID["timeline-5-8"])
	assert.Equal(t,
		"Bleeding symptom during pregnancy: Heavy bleeding. Severity: high. "+
			"Urgency: Immediately. What to do: Go to the emergency room.",
		byID["symptom-bleeding-heavy-bleeding"])
	assert.Equal(t,
		"Medication for Pain relief during pregnancy: Ibuprofen (Advil). "+
			"Safety: avoid - Avoid, especially after 20 weeks. Note: Linked to kidney problems in the baby.",
		byID["medication-pain-relief-ibuprofen"])
}

func TestBuildSections_MalformedSlicesSkipped(t *testing.T) {
	doc := fixtureDocument()
	doc.Timeline = append(doc.Timeline, domain.TimelineEntry{Weeks: "someday", Title: "Broken"})
	doc.Symptoms[0].Symptoms = append(doc.Symptoms[0].Symptoms, domain.Symptom{Sign: "Cramping", Severity: "extreme"})
	doc.Medications = append(doc.Medications, domain.MedicationGroup{
		Medications: []domain.Medication{{Drug: "Orphan", SafetyLevel: "Unknown"}},
	})
	doc.Nutrition.DailyNeeds = append(doc.Nutrition.DailyNeeds, domain.Nutrient{Name: "Iron"})

	sections, problems := BuildSections(doc)

	require.Len(t, problems, 4)
	for _, p := range problems {
		assert.ErrorIs(t, p, domain.ErrMalformedSlice)
	}
	assert.Equal(t, "nutrition.dailyNeeds[2]", problems[0].Slice)
	assert.Equal(t, "timeline[2]", problems[1].Slice)
	assert.Equal(t, "symptoms[0].symptoms[2]", problems[2].Slice)
	assert.Equal(t, "medications[2]", problems[3].Slice)

	// everything well-formed is still built
	assert.Len(t, sections, 13)
	assert.NotContains(t, sections[0].Content, "Iron")
}

func TestBuildSections_EmptyAndNil(t *testing.T) {
	sections, problems := BuildSections(nil)
	assert.Empty(t, sections)
	assert.Empty(t, problems)

	sections, problems = BuildSections(&domain.KnowledgeDocument{})
	assert.Empty(t, sections)
	assert.Empty(t, problems)
}

func TestBuildSections_DuplicateIDsSuffixed(t *testing.T) {
	doc := &domain.KnowledgeDocument{
		Medications: []domain.MedicationGroup{
			{Condition: "Pain", Medications: []domain.Medication{
				{Drug: "Acetaminophen", Brand: "Tylenol", SafetyLevel: "Generally safe"},
				{Drug: "acetaminophen", Brand: "Panadol", SafetyLevel: "Generally safe"},
			}},
		},
	}

	sections, _ := BuildSections(doc)
	assert.Equal(t, []string{"medication-pain-acetaminophen", "medication-pain-acetaminophen-2"}, sectionIDs(sections))
}

func TestBuildSections_OptionalFieldsOmitted(t *testing.T) {
	doc := &domain.KnowledgeDocument{
		Timeline: []domain.TimelineEntry{{Weeks: "20", Title: "Anatomy scan"}},
		Medications: []domain.MedicationGroup{
			{Condition: "Heartburn", Medications: []domain.Medication{{Drug: "Calcium carbonate", SafetyLevel: "Generally safe"}}},
		},
	}

	sections, problems := BuildSections(doc)
	require.Empty(t, problems)
	require.Len(t, sections, 2)
	assert.Equal(t, "Pregnancy weeks 20: Anatomy scan.", sections[0].Content)
	assert.Equal(t, "Medication for Heartburn during pregnancy: Calcium carbonate. Safety: Generally safe.", sections[1].Content)
}
