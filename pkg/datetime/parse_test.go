package datetime

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("ParseDate() unexpected error = %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 15 {
		t.Errorf("ParseDate() = %v", got)
	}

	if _, err := ParseDate("06/15/2025"); err == nil {
		t.Error("ParseDate() expected error for wrong layout")
	}
}

func TestMustParseTimePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseTime() expected panic for invalid date")
		}
	}()
	MustParseTime(DateLayout, "not-a-date")
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		date     string
		expected int
	}{
		{"2025-01-10", 31},
		{"2025-02-01", 28},
		{"2024-02-29", 29},
		{"2025-04-30", 30},
		{"2025-12-31", 31},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := DaysInMonth(MustParseTime(DateLayout, tt.date)); got != tt.expected {
				t.Errorf("DaysInMonth(%s) = %d, expected %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"Same day", "2025-03-01", "2025-03-01", 0},
		{"Across month", "2025-01-01", "2025-02-01", 31},
		{"Half year", "2025-01-01", "2025-07-01", 181},
		{"Leap year", "2024-01-01", "2025-01-01", 366},
		{"Reversed", "2025-02-01", "2025-01-01", -31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysBetween(MustParseTime(DateLayout, tt.start), MustParseTime(DateLayout, tt.end))
			if got != tt.expected {
				t.Errorf("DaysBetween() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestDaysBetweenIgnoresClock(t *testing.T) {
	start := time.Date(2025, 5, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, 5, 2, 0, 15, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 1 {
		t.Errorf("DaysBetween() = %d, expected 1", got)
	}
}
