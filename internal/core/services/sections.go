package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/logger"
)

// entrySeparator joins the entries rendered into one section.
const entrySeparator = ", "

// Fixed section IDs for the document-wide slices.
const (
	SectionNutritionDaily  = "nutrition-daily"
	SectionNutritionWeight = "nutrition-weight"
	SectionFoodSafety      = "food-safety"
	SectionMorningSickness = "morning-sickness"
)

// sectionBuilder accumulates sections and per-slice problems.
type sectionBuilder struct {
	sections []domain.Section
	problems []domain.SliceError
	seen     map[string]int
}

// BuildSections flattens the knowledge document into retrievable sections.
// Output order is nutrition-daily, nutrition-weight, food-safety, morning-sickness,
// then timeline entries, symptoms and medications in document order.
// Malformed slices are skipped and reported; the rest of the document is still built.
func BuildSections(doc *domain.KnowledgeDocument) ([]domain.Section, []domain.SliceError) {
	logger.Section("Section Build")

	if doc == nil {
		logger.Debug("No knowledge document, no sections")
		return []domain.Section{}, nil
	}

	b := &sectionBuilder{
		sections: []domain.Section{},
		seen:     make(map[string]int),
	}

	b.nutritionDaily(doc.Nutrition.DailyNeeds)
	b.nutritionWeight(doc.Nutrition.WeightGain)
	b.foodSafety(doc.FoodSafety)
	b.morningSickness(doc.MorningSickness)
	for i, entry := range doc.Timeline {
		b.timeline(i, entry)
	}
	for i, cat := range doc.Symptoms {
		b.symptoms(i, cat)
	}
	for i, group := range doc.Medications {
		b.medications(i, group)
	}

	logger.Debug("Built %d sections, skipped %d slices", len(b.sections), len(b.problems))
	for _, p := range b.problems {
		logger.Warn("Skipped slice %s", p.Error())
	}
	return b.sections, b.problems
}

func (b *sectionBuilder) add(id, content string) {
	// Two slices that slug to the same ID keep both, suffixed in order.
	if n := b.seen[id]; n > 0 {
		b.seen[id] = n + 1
		id = id + "-" + strconv.Itoa(n+1)
	} else {
		b.seen[id] = 1
	}
	b.sections = append(b.sections, domain.Section{ID: id, Content: content})
}

func (b *sectionBuilder) skip(path string, err error) {
	b.problems = append(b.problems, domain.SliceError{Slice: path, Err: err})
}

func (b *sectionBuilder) nutritionDaily(needs []domain.Nutrient) {
	entries := make([]string, 0, len(needs))
	for i, n := range needs {
		if err := n.Check(); err != nil {
			b.skip(fmt.Sprintf("nutrition.dailyNeeds[%d]", i), err)
			continue
		}
		entry := n.Name + ": " + joinNonEmpty(" ", n.Amount, n.Unit)
		if n.Category != "" {
			entry += " (" + n.Category + ")"
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return
	}
	b.add(SectionNutritionDaily,
		"Daily nutritional requirements during pregnancy: "+strings.Join(entries, entrySeparator)+".")
}

func (b *sectionBuilder) nutritionWeight(rows []domain.WeightGain) {
	entries := make([]string, 0, len(rows))
	for i, w := range rows {
		if err := w.Check(); err != nil {
			b.skip(fmt.Sprintf("nutrition.weightGain[%d]", i), err)
			continue
		}
		label := w.BMICategory
		if w.BMIRange != "" {
			label += " (BMI " + w.BMIRange + ")"
		}
		entries = append(entries, label+": "+w.TotalGain)
	}
	if len(entries) == 0 {
		return
	}
	b.add(SectionNutritionWeight,
		"Recommended total weight gain during pregnancy by pre-pregnancy BMI: "+
			strings.Join(entries, entrySeparator)+".")
}

func (b *sectionBuilder) foodSafety(f domain.FoodSafety) {
	var parts []string
	if len(f.UnsafeSeafood) > 0 {
		parts = append(parts, "Unsafe seafood: "+strings.Join(f.UnsafeSeafood, entrySeparator)+".")
	}

	avoid := make([]string, 0, len(f.Avoid))
	for i, a := range f.Avoid {
		if a.Item == "" {
			b.skip(fmt.Sprintf("foodSafety.avoid[%d]", i),
				fmt.Errorf("missing item: %w", domain.ErrMalformedSlice))
			continue
		}
		if a.Reason != "" {
			avoid = append(avoid, a.Item+" ("+a.Reason+")")
		} else {
			avoid = append(avoid, a.Item)
		}
	}
	if len(avoid) > 0 {
		parts = append(parts, "Also avoid: "+strings.Join(avoid, entrySeparator)+".")
	}

	if len(parts) == 0 {
		return
	}
	b.add(SectionFoodSafety, "Food safety during pregnancy. "+strings.Join(parts, " "))
}

func (b *sectionBuilder) morningSickness(m domain.MorningSickness) {
	if m.IsEmpty() {
		return
	}
	var parts []string
	if len(m.Eat) > 0 {
		parts = append(parts, "Foods that help: "+strings.Join(m.Eat, entrySeparator)+".")
	}
	if len(m.Avoid) > 0 {
		parts = append(parts, "Foods to avoid: "+strings.Join(m.Avoid, entrySeparator)+".")
	}
	if len(m.Tips) > 0 {
		parts = append(parts, "Tips: "+strings.Join(m.Tips, entrySeparator)+".")
	}
	b.add(SectionMorningSickness, "Morning sickness relief during pregnancy. "+strings.Join(parts, " "))
}

func (b *sectionBuilder) timeline(i int, e domain.TimelineEntry) {
	if err := e.Check(); err != nil {
		b.skip(fmt.Sprintf("timeline[%d]", i), err)
		return
	}

	var sb strings.Builder
	sb.WriteString("Pregnancy weeks " + strings.TrimSpace(e.Weeks))
	if e.Trimester != "" {
		sb.WriteString(" (" + e.Trimester + ")")
	}
	sb.WriteString(": " + e.Title + ".")

	symptoms := make([]string, 0, len(e.Symptoms))
	for _, s := range e.Symptoms {
		if s.Symptom == "" {
			continue
		}
		if s.Status != "" {
			symptoms = append(symptoms, s.Symptom+" ("+s.Status+")")
		} else {
			symptoms = append(symptoms, s.Symptom)
		}
	}
	if len(symptoms) > 0 {
		sb.WriteString(" Common symptoms: " + strings.Join(symptoms, entrySeparator) + ".")
	}

	if ex := e.Exercise; ex != nil && ex.Name != "" {
		sb.WriteString(" Recommended exercise: " + ex.Name + ".")
		if ex.Benefits != "" {
			sb.WriteString(" Benefits: " + ex.Benefits + ".")
		}
		if len(ex.Steps) > 0 {
			steps := make([]string, len(ex.Steps))
			for j, step := range ex.Steps {
				steps[j] = strconv.Itoa(j+1) + ". " + step
			}
			sb.WriteString(" Steps: " + strings.Join(steps, entrySeparator) + ".")
		}
	}

	b.add(domain.SectionID("timeline", e.Weeks), sb.String())
}

func (b *sectionBuilder) symptoms(i int, cat domain.SymptomCategory) {
	if cat.Category == "" {
		b.skip(fmt.Sprintf("symptoms[%d]", i), fmt.Errorf("missing category: %w", domain.ErrMalformedSlice))
		return
	}
	for j, s := range cat.Symptoms {
		if err := s.Check(); err != nil {
			b.skip(fmt.Sprintf("symptoms[%d].symptoms[%d]", i, j), err)
			continue
		}
		content := fmt.Sprintf("%s symptom during pregnancy: %s. Severity: %s.", cat.Category, s.Sign, s.Severity)
		if s.Urgency != "" {
			content += " Urgency: " + s.Urgency + "."
		}
		if s.Action != "" {
			content += " What to do: " + s.Action + "."
		}
		b.add(domain.SectionID("symptom", cat.Category, s.Sign), content)
	}
}

func (b *sectionBuilder) medications(i int, group domain.MedicationGroup) {
	if group.Condition == "" {
		b.skip(fmt.Sprintf("medications[%d]", i), fmt.Errorf("missing condition: %w", domain.ErrMalformedSlice))
		return
	}
	for j, m := range group.Medications {
		if err := m.Check(); err != nil {
			b.skip(fmt.Sprintf("medications[%d].medications[%d]", i, j), err)
			continue
		}
		name := m.Drug
		if m.Brand != "" {
			name += " (" + m.Brand + ")"
		}
		content := fmt.Sprintf("Medication for %s during pregnancy: %s. Safety: %s.",
			group.Condition, name, joinNonEmpty(" - ", m.Marker, m.SafetyLevel))
		if m.Note != "" {
			content += " Note: " + m.Note + "."
		}
		b.add(domain.SectionID("medication", group.Condition, m.Drug), content)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
