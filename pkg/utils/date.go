package utils

import (
	"time"

	"golang-signal-scanner/pkg/common"
)

// Clock returns the current time. Services take one so tests can pin the date.
type Clock func() time.Time

// LocalClock returns a Clock in the given IANA location, or the process local time when name is empty
// or unknown.
func LocalClock(name string) Clock {
	if name == "" {
		return time.Now
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Now
	}
	return func() time.Time { return time.Now().In(loc) }
}

// DateKey formats the calendar date of t in t's own location.
func DateKey(t time.Time) string {
	return t.Format(common.DateLayout)
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
