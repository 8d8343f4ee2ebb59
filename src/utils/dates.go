package utils

import (
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Date helpers
// -----------------------------------------------------------------------------

// Date builds a UTC midnight time for a calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------

// DaysBetween returns the whole-day span from a to b (b - a).
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// -----------------------------------------------------------------------------

// MonthKey formats a date as "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// -----------------------------------------------------------------------------

// DateKey formats a date as "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// -----------------------------------------------------------------------------

// ISOWeekKey formats a date as "YYYY-Www" with Monday as week start,
// e.g. "2024-W07". Year is the ISO week-year, not the calendar year.
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
