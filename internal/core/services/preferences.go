package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
)

// Ensure PreferencesService implements the interface.
var _ driving.PreferencesService = (*PreferencesService)(nil)

const keyDueDate = "preferences.due_date"

// PreferencesService persists the due date in the config store.
type PreferencesService struct {
	configStore driven.ConfigStore
}

// NewPreferencesService creates a preferences service.
func NewPreferencesService(configStore driven.ConfigStore) *PreferencesService {
	return &PreferencesService{configStore: configStore}
}

// DueDate returns the stored due date.
func (s *PreferencesService) DueDate() (time.Time, bool, error) {
	raw := s.configStore.GetString(keyDueDate)
	if raw == "" {
		return time.Time{}, false, nil
	}
	due, err := domain.ParseDueDate(raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("stored due date: %w", err)
	}
	return due, true, nil
}

// SetDueDate stores the due date.
func (s *PreferencesService) SetDueDate(due time.Time) error {
	if due.IsZero() {
		return fmt.Errorf("due date: %w", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyDueDate, due.Format(domain.DueDateLayout)); err != nil {
		return fmt.Errorf("save due date: %w", err)
	}
	return nil
}

// CurrentWeek returns the gestational week at now.
func (s *PreferencesService) CurrentWeek(now time.Time) (int, bool, error) {
	due, ok, err := s.DueDate()
	if err != nil || !ok {
		return 0, false, err
	}
	return domain.GestationalWeek(due, now), true, nil
}
