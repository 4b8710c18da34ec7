// Package dates holds the calendar-day conventions used across the booking
// domain: days are UTC midnight instants and ranges are half-open, so a stay
// of [2025-02-01, 2025-02-03) occupies the nights of Feb 1 and Feb 2.
package dates

import (
	"errors"
	"time"
)

const Layout = "2006-01-02"

var errEndNotAfterStart = errors.New("end date must be after start date")

// Parse reads a calendar date in YYYY-MM-DD form as a UTC midnight instant.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// ParseRange reads a [start, end) pair and requires at least one night.
func ParseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := Parse(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := Parse(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errEndNotAfterStart
	}
	return start, end, nil
}

// Format renders a day as YYYY-MM-DD.
func Format(t time.Time) string { return t.Format(Layout) }

// Nights counts the nights in the half-open range [start, end).
func Nights(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// AddDays shifts a day by n calendar days.
func AddDays(d time.Time, n int) time.Time { return d.AddDate(0, 0, n) }
