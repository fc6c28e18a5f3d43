package utils

import "time"

// AddMonthsClamped adds months to a date, clamping the day to the last day of
// the target month instead of letting time.AddDate normalize past it.
// 2024-01-31 + 1 month = 2024-02-29, not 2024-03-02.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	totalMonths := int(month) - 1 + months
	targetYear := year + totalMonths/12
	targetMonth := time.Month(totalMonths%12 + 1)
	if totalMonths < 0 && totalMonths%12 != 0 {
		targetYear--
		targetMonth = time.Month(totalMonths%12 + 13)
	}

	if max := DaysInMonth(targetYear, targetMonth); day > max {
		day = max
	}

	return time.Date(
		targetYear, targetMonth, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location(),
	)
}

// AddYearsClamped adds whole years, clamping Feb 29 to Feb 28 on non-leap years.
func AddYearsClamped(t time.Time, years int) time.Time {
	return AddMonthsClamped(t, years*12)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the signed number of full days from one instant to
// another. Negative when to is before from.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// MonthKey truncates a date to its year-month bucket key (YYYY-MM).
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
