// Package timeutil anchors calendar computations to UTC so that range
// comparisons behave identically regardless of the server's zone.
package timeutil

import "time"

// DayBounds returns the UTC start and end instants of t's calendar day.
//
// The day is taken from t's local year/month/day components and rebuilt
// as UTC components verbatim. This is deliberately not a zone
// conversion: an input of 2024-04-20 00:00 local maps to the 2024-04-20
// UTC day, never the 19th, so every caller in one deployment agrees on
// which day a wall-clock instant belongs to.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	return start, end
}

// WeekBounds returns the UTC bounds of the Sunday-through-Saturday week
// containing t's calendar day.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	sunday := day.AddDate(0, 0, -int(day.Weekday()))
	start, _ := DayBounds(sunday)
	_, end := DayBounds(sunday.AddDate(0, 0, 6))
	return start, end
}

// MonthBounds returns the UTC bounds of t's calendar month.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	start, _ := DayBounds(first)
	_, end := DayBounds(first.AddDate(0, 1, -1))
	return start, end
}

// YearBounds returns the UTC bounds of t's calendar year.
func YearBounds(t time.Time) (time.Time, time.Time) {
	y, _, _ := t.Date()
	start, _ := DayBounds(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC))
	_, end := DayBounds(time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC))
	return start, end
}

// Day collapses t to the UTC midnight of its calendar day. Two instants
// share a bucket date exactly when Day returns equal values.
func Day(t time.Time) time.Time {
	start, _ := DayBounds(t)
	return start
}
