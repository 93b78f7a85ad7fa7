// Package datetime provides date utility functions for prorations.
package datetime

import (
	"time"
)

// DateLayout is the calendar-date format accepted in worksheets and requests.
const DateLayout = "2006-01-02"

const hoursPerDay = 24

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// DaysInMonth returns the number of days in the month containing date.
func DaysInMonth(date time.Time) int {
	firstOfNext := time.Date(date.Year(), date.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// DaysBetween returns the whole calendar days from start to end, negative if
// end precedes start. Clock time and zone offsets are ignored.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / hoursPerDay)
}
