package utils

import (
	"fmt"
	"time"
)

// Calendar dates are stored as "2006-01-02" strings and times of day as
// "15:04" strings. Both orders lexicographically the same way they order
// chronologically, which keeps range queries plain string comparisons.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Validationf("invalid date %q", s)
	}
	return t, nil
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses an "HH:MM" time of day into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, Validationf("invalid time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

const lastMinuteOfDay = 23*60 + 59

// AddMinutes shifts an "HH:MM" time of day forward by the given minutes.
// The result saturates at "23:59" so it always reparses as a time of day.
func AddMinutes(clock string, minutes int) (string, error) {
	m, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	m += minutes
	if m > lastMinuteOfDay {
		m = lastMinuteOfDay
	}
	return FormatClock(m), nil
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// Today returns the current calendar date as an ISO string.
func Today() string {
	return FormatDate(time.Now())
}
