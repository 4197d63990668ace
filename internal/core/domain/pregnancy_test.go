package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2026-12-25")
	require.NoError(t, err)
	assert.Equal(t, time.December, d.Month())

	_, err = ParseDueDate("25/12/2026")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGestationalWeek(t *testing.T) {
	due := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "due today", now: due, want: 40},
		{name: "one week out", now: due.AddDate(0, 0, -7), want: 39},
		{name: "partial week rounds down", now: due.AddDate(0, 0, -10), want: 39},
		{name: "twenty weeks out", now: due.AddDate(0, 0, -140), want: 20},
		{name: "before conception clamps", now: due.AddDate(0, 0, -400), want: 1},
		{name: "one week over", now: due.AddDate(0, 0, 7), want: 41},
		{name: "far past clamps", now: due.AddDate(0, 0, 60), want: MaxGestationalWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GestationalWeek(due, tt.now))
		})
	}
}
