// Package schedule derives bookable time slots from a restaurant's
// opening hours.  Everything here is pure: the functions take strings
// in and return strings out, touch no shared state and are safe to
// call from any goroutine.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DefaultIntervalMin is the spacing between bookable slots when the
// caller does not specify one.
const DefaultIntervalMin = 30

// Slots returns the ordered bookable start times between open and
// close, both given as "HH:MM" on a 24-hour clock.  The first slot is
// the opening time itself and each subsequent slot is intervalMin
// minutes later.  The closing time is excluded: the last slot must
// start strictly before close so service runs up to but not past it.
//
// When open >= close the result is empty; restaurants model a closed
// day as equal or inverted times.  Closing times past midnight are not
// supported and must be split into two day ranges by the caller.
// Malformed inputs also yield an empty result.
func Slots(open, close string, intervalMin int) []string {
	if intervalMin <= 0 {
		intervalMin = DefaultIntervalMin
	}
	openMin, err := parseClock(open)
	if err != nil {
		return []string{}
	}
	closeMin, err := parseClock(close)
	if err != nil {
		return []string{}
	}
	out := []string{}
	for m := openMin; m < closeMin; m += intervalMin {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}

// DayOfWeek returns the lower-case full English weekday name for a
// "YYYY-MM-DD" date, e.g. "monday".  The name matches the day keys
// stored in restaurant_hours.
func DayOfWeek(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return strings.ToLower(t.Weekday().String()), nil
}

// parseClock converts "HH:MM" to minutes since midnight.  Hours above
// 23 or minutes above 59 are rejected.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return h*60 + m, nil
}
