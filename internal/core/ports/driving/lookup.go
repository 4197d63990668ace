package driving

import "github.com/custodia-labs/bumpbook/internal/core/domain"

// LookupService provides direct, unranked accessors over the knowledge document.
// Every method is pure; no match is an empty result, not an error.
type LookupService interface {
	// CheckMedicationSafety matches drug name or brand by case-insensitive substring.
	CheckMedicationSafety(name string) []domain.MedicationMatch

	// LookupSymptom matches symptom signs by case-insensitive substring.
	LookupSymptom(sign string) []domain.SymptomMatch

	// WeekInfo returns the timeline entries whose range contains week.
	WeekInfo(week int) []domain.TimelineEntry

	// EmergencySymptoms returns every high-severity symptom in category-then-symptom order.
	EmergencySymptoms() []domain.SymptomMatch

	// Timeline returns every timeline entry.
	Timeline() []domain.TimelineEntry

	// Medications returns every medication group.
	Medications() []domain.MedicationGroup

	// Nutrition returns the nutritional requirements.
	Nutrition() domain.NutritionGuide

	// FoodSafety returns the food safety guidance.
	FoodSafety() domain.FoodSafety

	// MorningSickness returns the morning sickness guidance.
	MorningSickness() domain.MorningSickness
}
