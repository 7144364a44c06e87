package entity

import "time"

// DateOnly truncates t to its calendar day (midnight, same location).
// Calendar dates group records by day independent of time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day,
// regardless of their time-of-day components.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Today returns the current calendar date
func Today() time.Time {
	return DateOnly(time.Now())
}
