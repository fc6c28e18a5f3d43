package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "January 31 clamps to leap-year February 29",
			start:    date(2024, time.January, 31),
			months:   1,
			expected: date(2024, time.February, 29),
		},
		{
			name:     "January 31 clamps to February 28 outside leap year",
			start:    date(2023, time.January, 31),
			months:   1,
			expected: date(2023, time.February, 28),
		},
		{
			name:     "mid-month day is preserved",
			start:    date(2024, time.March, 15),
			months:   3,
			expected: date(2024, time.June, 15),
		},
		{
			name:     "crossing a year boundary",
			start:    date(2024, time.November, 30),
			months:   3,
			expected: date(2025, time.February, 28),
		},
		{
			name:     "twelve months equals calendar year addition",
			start:    date(2024, time.May, 10),
			months:   12,
			expected: date(2025, time.May, 10),
		},
		{
			name:     "negative months",
			start:    date(2024, time.March, 31),
			months:   -1,
			expected: date(2024, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonthsClamped(tt.start, tt.months))
		})
	}
}

func TestAddYearsClamped(t *testing.T) {
	assert.Equal(t,
		date(2025, time.February, 28),
		AddYearsClamped(date(2024, time.February, 29), 1),
	)
	assert.Equal(t,
		date(2025, time.July, 4),
		AddYearsClamped(date(2024, time.July, 4), 1),
	)
}

func TestAddMonthsClampedPreservesTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.January, 31, 14, 30, 45, 0, time.UTC)
	result := AddMonthsClamped(start, 1)

	assert.Equal(t, time.Date(2024, time.February, 29, 14, 30, 45, 0, time.UTC), result)
}

func TestDaysBetween(t *testing.T) {
	now := date(2024, time.June, 1)

	assert.Equal(t, 30, DaysBetween(now, date(2024, time.July, 1)))
	assert.Equal(t, 0, DaysBetween(now, now))
	assert.Equal(t, -1, DaysBetween(now, date(2024, time.May, 31)))

	// Partial days truncate toward zero, matching full-day semantics
	assert.Equal(t, 0, DaysBetween(now, now.Add(23*time.Hour)))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2024-06", MonthKey(date(2024, time.June, 15)))
	assert.Equal(t, "2024-01", MonthKey(date(2024, time.January, 1)))
}
