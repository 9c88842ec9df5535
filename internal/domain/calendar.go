// internal/domain/calendar.go
package domain

import "time"

// StartOfDay truncates t to midnight in its own location. Day-granular
// records use this as their canonical date.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last second of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey renders t's calendar day as a stable map key ("2006-01-02").
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DaysInMonth counts the calendar days of the month containing t.
func DaysInMonth(t time.Time) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
