package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a calendar date (day granularity) as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t.UTC(), nil
}

// Truncate drops any time-of-day component, keeping the UTC calendar date.
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights counts the nights in the half-open range [checkIn, checkOut).
// A range of N+1 dates covers exactly N nights; checkOut itself is never
// an occupied night.
func Nights(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	return int(Truncate(checkOut).Sub(Truncate(checkIn)).Hours() / 24)
}

// NightCovered reports whether the night starting at night falls inside
// the half-open range [checkIn, checkOut).
func NightCovered(checkIn, checkOut, night time.Time) bool {
	return !night.Before(checkIn) && night.Before(checkOut)
}
