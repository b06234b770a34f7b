package scheduler

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidClock is returned when a time of day is not in HH:mm form
var ErrInvalidClock = errors.New("invalid clock time, expected HH:mm")

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidClock reports whether s is a well formed HH:mm time of day
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseClock converts an HH:mm string to minutes since midnight
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// parseRange parses a start/end pair
func parseRange(start, end string) (int, int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, 0, err
	}
	return s, e, nil
}

// Overlaps checks if two half-open clock ranges [aStart, aEnd) and [bStart, bEnd) overlap.
// Ranges that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, ae, err := parseRange(aStart, aEnd)
	if err != nil {
		return false, err
	}
	bs, be, err := parseRange(bStart, bEnd)
	if err != nil {
		return false, err
	}
	return overlapMinutes(as, ae, bs, be), nil
}

func overlapMinutes(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// DurationHours calculates the length of a clock range in hours
func DurationHours(start, end string) (float64, error) {
	s, e, err := parseRange(start, end)
	if err != nil {
		return 0, err
	}
	return float64(e-s) / 60, nil
}
