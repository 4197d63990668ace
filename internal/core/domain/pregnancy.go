package domain

import (
	"fmt"
	"time"
)

// DueDateLayout is the format used to store and parse due dates.
const DueDateLayout = "2006-01-02"

// FullTermWeeks is the length of a full-term pregnancy.
const FullTermWeeks = 40

// ParseDueDate parses a YYYY-MM-DD due date.
func ParseDueDate(s string) (time.Time, error) {
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("due date %q: %w", s, ErrInvalidInput)
	}
	return t, nil
}

// GestationalWeek returns the current week of pregnancy for a due date.
// It is FullTermWeeks minus the whole weeks remaining, clamped to 1..MaxGestationalWeek.
func GestationalWeek(due, now time.Time) int {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	days := int(dueDay.Sub(today).Hours() / 24)
	remaining := days / 7

	week := FullTermWeeks - remaining
	if week < 1 {
		return 1
	}
	if week > MaxGestationalWeek {
		return MaxGestationalWeek
	}
	return week
}
