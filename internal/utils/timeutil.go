package utils

import (
	"fmt"
	"time"
)

// ParseDate parses an ISO 8601 date (YYYY-MM-DD or RFC3339)
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// ParseTimeOfDay validates an HH:MM time-of-day value and returns the minute
// of day it represents
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day: %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTimestamp formats a timestamp as RFC3339
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
