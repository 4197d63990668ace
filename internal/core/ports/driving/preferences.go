package driving

import "time"

// PreferencesService persists the single user preference: the due date.
type PreferencesService interface {
	// DueDate returns the stored due date.
	// ok is false when none has been set.
	DueDate() (due time.Time, ok bool, err error)

	// SetDueDate stores the due date.
	SetDueDate(due time.Time) error

	// CurrentWeek returns the gestational week at now.
	// ok is false when no due date has been set.
	CurrentWeek(now time.Time) (week int, ok bool, err error)
}
