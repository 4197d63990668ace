package services

import (
	"strings"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// DocumentProvider supplies the loaded knowledge document.
type DocumentProvider interface {
	Document() *domain.KnowledgeDocument
}

// LookupService answers exact-category questions straight from the document.
// It never touches the index and never calls out.
type LookupService struct {
	docs DocumentProvider
}

// NewLookupService creates a lookup service over the provided document.
func NewLookupService(docs DocumentProvider) *LookupService {
	return &LookupService{docs: docs}
}

func (s *LookupService) doc() *domain.KnowledgeDocument {
	if s.docs == nil {
		return &domain.KnowledgeDocument{}
	}
	if d := s.docs.Document(); d != nil {
		return d
	}
	return &domain.KnowledgeDocument{}
}

// CheckMedicationSafety matches drug name or brand by case-insensitive substring.
func (s *LookupService) CheckMedicationSafety(name string) []domain.MedicationMatch {
	needle := strings.ToLower(strings.TrimSpace(name))
	matches := []domain.MedicationMatch{}
	if needle == "" {
		return matches
	}

	for _, group := range s.doc().Medications {
		for _, m := range group.Medications {
			if containsFold(m.Drug, needle) || (m.Brand != "" && containsFold(m.Brand, needle)) {
				matches = append(matches, domain.MedicationMatch{Condition: group.Condition, Medication: m})
			}
		}
	}
	return matches
}

// LookupSymptom matches symptom signs by case-insensitive substring.
func (s *LookupService) LookupSymptom(sign string) []domain.SymptomMatch {
	needle := strings.ToLower(strings.TrimSpace(sign))
	matches := []domain.SymptomMatch{}
	if needle == "" {
		return matches
	}

	for _, cat := range s.doc().Symptoms {
		for _, sym := range cat.Symptoms {
			if containsFold(sym.Sign, needle) {
				matches = append(matches, domain.SymptomMatch{Category: cat.Category, Symptom: sym})
			}
		}
	}
	return matches
}

// WeekInfo returns the timeline entries whose range contains week.
func (s *LookupService) WeekInfo(week int) []domain.TimelineEntry {
	entries := []domain.TimelineEntry{}
	for _, e := range s.doc().Timeline {
		if e.Contains(week) {
			entries = append(entries, e)
		}
	}
	return entries
}

// EmergencySymptoms returns every high-severity symptom in category-then-symptom order.
func (s *LookupService) EmergencySymptoms() []domain.SymptomMatch {
	matches := []domain.SymptomMatch{}
	for _, cat := range s.doc().Symptoms {
		for _, sym := range cat.Symptoms {
			if sym.Severity == domain.SeverityHigh {
				matches = append(matches, domain.SymptomMatch{Category: cat.Category, Symptom: sym})
			}
		}
	}
	return matches
}

// Timeline returns every timeline entry in document order.
func (s *LookupService) Timeline() []domain.TimelineEntry {
	return append([]domain.TimelineEntry{}, s.doc().Timeline...)
}

// Medications returns every medication group in document order.
func (s *LookupService) Medications() []domain.MedicationGroup {
	return append([]domain.MedicationGroup{}, s.doc().Medications...)
}

// Nutrition returns the nutritional requirements.
func (s *LookupService) Nutrition() domain.NutritionGuide {
	return s.doc().Nutrition
}

// FoodSafety returns the food safety guidance.
func (s *LookupService) FoodSafety() domain.FoodSafety {
	return s.doc().FoodSafety
}

// MorningSickness returns the morning sickness guidance.
func (s *LookupService) MorningSickness() domain.MorningSickness {
	return s.doc().MorningSickness
}

// containsFold reports whether lower-cased s contains the already lower-cased needle.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
