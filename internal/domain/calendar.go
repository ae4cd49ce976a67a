package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for daily workouts.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC of
// that civil date, so Weekday() does not depend on any time zone.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return parsed, nil
}

// DayOfWeek returns 0 for Sunday through 6 for Saturday.
func DayOfWeek(date time.Time) int {
	return int(date.Weekday())
}

// FormatDate renders the civil date of t in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}
