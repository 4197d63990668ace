package domain

// MedicationMatch is a medication together with the condition it is listed under.
type MedicationMatch struct {
	Condition  string
	Medication Medication
}

// SymptomMatch is a symptom together with its category.
type SymptomMatch struct {
	Category string
	Symptom  Symptom
}
