package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxGestationalWeek is the last week a timeline range may cover.
const MaxGestationalWeek = 42

// KnowledgeDocument is the structured pregnancy knowledge tree.
// It is supplied externally, validated once at load and never mutated afterwards.
type KnowledgeDocument struct {
	// Nutrition holds daily nutrient targets and weight-gain guidance.
	Nutrition NutritionGuide `json:"nutritionalRequirements" yaml:"nutritionalRequirements" toml:"nutritionalRequirements"`

	// FoodSafety lists foods to avoid.
	FoodSafety FoodSafety `json:"foodSafety" yaml:"foodSafety" toml:"foodSafety"`

	// MorningSickness holds nausea guidance.
	MorningSickness MorningSickness `json:"morningSickness" yaml:"morningSickness" toml:"morningSickness"`

	// Timeline is keyed by week range, in document order.
	Timeline []TimelineEntry `json:"timeline" yaml:"timeline" toml:"timeline"`

	// Symptoms groups troubleshooting entries by category.
	Symptoms []SymptomCategory `json:"symptoms" yaml:"symptoms" toml:"symptoms"`

	// Medications groups drugs by the condition they treat.
	Medications []MedicationGroup `json:"medications" yaml:"medications" toml:"medications"`

	// DecodeProblems lists slices the source could not decode. They are
	// absent from the fields above.
	DecodeProblems []SliceError `json:"-" yaml:"-" toml:"-"`
}

// NutritionGuide holds the nutritional requirements domain.
type NutritionGuide struct {
	DailyNeeds []Nutrient   `json:"dailyNeeds" yaml:"dailyNeeds" toml:"dailyNeeds"`
	WeightGain []WeightGain `json:"weightGain" yaml:"weightGain" toml:"weightGain"`
}

// Nutrient is one daily macro-nutrient target.
type Nutrient struct {
	Name     string `json:"nutrient" yaml:"nutrient" toml:"nutrient"`
	Amount   string `json:"amount" yaml:"amount" toml:"amount"`
	Unit     string `json:"unit" yaml:"unit" toml:"unit"`
	Category string `json:"category" yaml:"category" toml:"category"`
}

// Check reports whether the nutrient has the fields needed to render it.
func (n Nutrient) Check() error {
	if n.Name == "" || n.Amount == "" {
		return fmt.Errorf("nutrient %q: missing name or amount: %w", n.Name, ErrMalformedSlice)
	}
	return nil
}

// WeightGain is one row of the weight-gain-by-BMI table.
type WeightGain struct {
	BMICategory string `json:"bmiCategory" yaml:"bmiCategory" toml:"bmiCategory"`
	BMIRange    string `json:"bmiRange" yaml:"bmiRange" toml:"bmiRange"`
	TotalGain   string `json:"totalGain" yaml:"totalGain" toml:"totalGain"`
}

// Check reports whether the row has the fields needed to render it.
func (w WeightGain) Check() error {
	if w.BMICategory == "" || w.TotalGain == "" {
		return fmt.Errorf("weight gain %q: missing category or total: %w", w.BMICategory, ErrMalformedSlice)
	}
	return nil
}

// FoodSafety lists unsafe seafood and other items to avoid.
type FoodSafety struct {
	UnsafeSeafood []string    `json:"unsafeSeafood" yaml:"unsafeSeafood" toml:"unsafeSeafood"`
	Avoid         []AvoidItem `json:"avoid" yaml:"avoid" toml:"avoid"`
}

// AvoidItem is a food to avoid with the reason.
type AvoidItem struct {
	Item   string `json:"item" yaml:"item" toml:"item"`
	Reason string `json:"reason" yaml:"reason" toml:"reason"`
}

// IsEmpty returns true if there is nothing to render.
func (f FoodSafety) IsEmpty() bool {
	return len(f.UnsafeSeafood) == 0 && len(f.Avoid) == 0
}

// MorningSickness holds foods to eat, foods to avoid and coping tips.
type MorningSickness struct {
	Eat   []string `json:"eat" yaml:"eat" toml:"eat"`
	Avoid []string `json:"avoid" yaml:"avoid" toml:"avoid"`
	Tips  []string `json:"tips" yaml:"tips" toml:"tips"`
}

// IsEmpty returns true if there is nothing to render.
func (m MorningSickness) IsEmpty() bool {
	return len(m.Eat) == 0 && len(m.Avoid) == 0 && len(m.Tips) == 0
}

// TimelineEntry describes one week range of the pregnancy.
type TimelineEntry struct {
	// Weeks is the range key, e.g. "1-4", "20" or "40+".
	Weeks     string            `json:"weeks" yaml:"weeks" toml:"weeks"`
	Trimester string            `json:"trimester" yaml:"trimester" toml:"trimester"`
	Title     string            `json:"title" yaml:"title" toml:"title"`
	Symptoms  []TimelineSymptom `json:"symptoms" yaml:"symptoms" toml:"symptoms"`
	Exercise  *Exercise         `json:"exercise,omitempty" yaml:"exercise,omitempty" toml:"exercise,omitempty"`
}

// TimelineSymptom pairs a symptom with how common it is at this stage.
type TimelineSymptom struct {
	Symptom string `json:"symptom" yaml:"symptom" toml:"symptom"`
	Status  string `json:"status" yaml:"status" toml:"status"`
}

// Exercise is an optional recommended exercise for a week range.
type Exercise struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Benefits string   `json:"benefits" yaml:"benefits" toml:"benefits"`
	Steps    []string `json:"steps" yaml:"steps" toml:"steps"`
}

// Range parses the Weeks key.
func (e TimelineEntry) Range() (start, end int, err error) {
	return ParseWeekRange(e.Weeks)
}

// Contains reports whether week falls inside the entry's range.
// Entries with an unparsable range contain nothing.
func (e TimelineEntry) Contains(week int) bool {
	start, end, err := e.Range()
	if err != nil {
		return false
	}
	return week >= start && week <= end
}

// Check reports whether the entry has the fields needed to render it.
func (e TimelineEntry) Check() error {
	if _, _, err := e.Range(); err != nil {
		return fmt.Errorf("timeline %q: %w", e.Weeks, err)
	}
	if e.Title == "" {
		return fmt.Errorf("timeline %q: missing title: %w", e.Weeks, ErrMalformedSlice)
	}
	return nil
}

// ParseWeekRange parses "N-M", "N" or "N+" into an inclusive week range.
func ParseWeekRange(s string) (start, end int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty week range: %w", ErrMalformedSlice)
	}

	if strings.HasSuffix(s, "+") {
		start, err = strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "+")))
		if err != nil {
			return 0, 0, fmt.Errorf("week range %q: %w", s, ErrMalformedSlice)
		}
		end = MaxGestationalWeek
	} else if lo, hi, ok := strings.Cut(s, "-"); ok {
		start, err = strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return 0, 0, fmt.Errorf("week range %q: %w", s, ErrMalformedSlice)
		}
		end, err = strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return 0, 0, fmt.Errorf("week range %q: %w", s, ErrMalformedSlice)
		}
	} else {
		start, err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("week range %q: %w", s, ErrMalformedSlice)
		}
		end = start
	}

	if start < 1 || end < start || end > MaxGestationalWeek {
		return 0, 0, fmt.Errorf("week range %q out of bounds: %w", s, ErrMalformedSlice)
	}
	return start, end, nil
}

// Severity grades how urgent a symptom is.
type Severity string

// Symptom severities.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IsValid returns true if the severity is recognised.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Severity) String() string {
	return string(s)
}

// SymptomCategory groups symptoms, e.g. "Bleeding" or "Digestive".
type SymptomCategory struct {
	Category string    `json:"category" yaml:"category" toml:"category"`
	Symptoms []Symptom `json:"symptoms" yaml:"symptoms" toml:"symptoms"`
}

// Symptom is one troubleshooting entry.
type Symptom struct {
	Sign     string   `json:"sign" yaml:"sign" toml:"sign"`
	Urgency  string   `json:"urgency" yaml:"urgency" toml:"urgency"`
	Action   string   `json:"action" yaml:"action" toml:"action"`
	Severity Severity `json:"severity" yaml:"severity" toml:"severity"`
}

// Check reports whether the symptom has the fields needed to render it.
func (s Symptom) Check() error {
	if s.Sign == "" {
		return fmt.Errorf("symptom: missing sign: %w", ErrMalformedSlice)
	}
	if !s.Severity.IsValid() {
		return fmt.Errorf("symptom %q: invalid severity %q: %w", s.Sign, s.Severity, ErrMalformedSlice)
	}
	return nil
}

// MedicationGroup lists medications for one condition.
type MedicationGroup struct {
	Condition   string       `json:"condition" yaml:"condition" toml:"condition"`
	Medications []Medication `json:"medications" yaml:"medications" toml:"medications"`
}

// Medication is one drug with its pregnancy safety rating.
type Medication struct {
	Drug string `json:"drug" yaml:"drug" toml:"drug"`

	// Brand is optional.
	Brand string `json:"brand,omitempty" yaml:"brand,omitempty" toml:"brand,omitempty"`

	// Marker is a short visual marker of safety, e.g. "safe", "caution" or "avoid".
	Marker string `json:"marker" yaml:"marker" toml:"marker"`

	SafetyLevel string `json:"safetyLevel" yaml:"safetyLevel" toml:"safetyLevel"`

	// Note is optional.
	Note string `json:"note,omitempty" yaml:"note,omitempty" toml:"note,omitempty"`
}

// Check reports whether the medication has the fields needed to render it.
func (m Medication) Check() error {
	if m.Drug == "" || m.SafetyLevel == "" {
		return fmt.Errorf("medication %q: missing drug or safety level: %w", m.Drug, ErrMalformedSlice)
	}
	return nil
}

// IsEmpty returns true if the document carries no content at all.
func (d *KnowledgeDocument) IsEmpty() bool {
	if d == nil {
		return true
	}
	return len(d.Nutrition.DailyNeeds) == 0 &&
		len(d.Nutrition.WeightGain) == 0 &&
		d.FoodSafety.IsEmpty() &&
		d.MorningSickness.IsEmpty() &&
		len(d.Timeline) == 0 &&
		len(d.Symptoms) == 0 &&
		len(d.Medications) == 0
}

// Validate checks every slice once and returns the problems found,
// starting with any the source reported while decoding.
// A non-empty result does not make the document unusable; callers skip
// the named slices and keep the rest.
func (d *KnowledgeDocument) Validate() []SliceError {
	if d == nil {
		return nil
	}

	problems := append([]SliceError(nil), d.DecodeProblems...)
	add := func(slice string, err error) {
		if err != nil {
			problems = append(problems, SliceError{Slice: slice, Err: err})
		}
	}

	for i, n := range d.Nutrition.DailyNeeds {
		add(fmt.Sprintf("nutrition.dailyNeeds[%d]", i), n.Check())
	}
	for i, w := range d.Nutrition.WeightGain {
		add(fmt.Sprintf("nutrition.weightGain[%d]", i), w.Check())
	}
	for i, e := range d.Timeline {
		add(fmt.Sprintf("timeline[%d]", i), e.Check())
	}
	for i, c := range d.Symptoms {
		if c.Category == "" {
			add(fmt.Sprintf("symptoms[%d]", i), fmt.Errorf("missing category: %w", ErrMalformedSlice))
			continue
		}
		for j, s := range c.Symptoms {
			add(fmt.Sprintf("symptoms[%d].symptoms[%d]", i, j), s.Check())
		}
	}
	for i, g := range d.Medications {
		if g.Condition == "" {
			add(fmt.Sprintf("medications[%d]", i), fmt.Errorf("missing condition: %w", ErrMalformedSlice))
			continue
		}
		for j, m := range g.Medications {
			add(fmt.Sprintf("medications[%d].medications[%d]", i, j), m.Check())
		}
	}

	return problems
}

// SliceError names one slice of the document that could not be used.
type SliceError struct {
	// Slice is the path of the slice within the document.
	Slice string

	// Err is the underlying problem.
	Err error
}

// Error implements error.
func (e SliceError) Error() string {
	return e.Slice + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e SliceError) Unwrap() error {
	return e.Err
}

// LoadResult is the outcome of loading the knowledge document.
type LoadResult struct {
	// Document is never nil; it is empty when the source could not be read.
	Document *KnowledgeDocument

	// Source is where the document was read from.
	Source string

	// Problems lists slices that failed validation.
	Problems []SliceError

	Outcome Outcome
}
