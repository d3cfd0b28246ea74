// Package slot turns working-hours windows into fixed-width bookable slots.
// It has no I/O; every schedule in the service is derived through ForWindows.
package slot

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultDuration is used when a chamber leaves its slot duration unset.
const DefaultDuration = 30

const minutesPerDay = 24 * 60

var (
	ErrInvalidClock    = errors.New("invalid time, use HH:MM")
	ErrInvalidWindow   = errors.New("start time must be before end time")
	ErrInvalidDuration = errors.New("slot duration must be positive")
)

// Window is a working-hours range on a single day.
type Window struct {
	Start string
	End   string
}

// Interval is one generated slot.
type Interval struct {
	Start string
	End   string
}

// DefaultWindows is the fallback day (a morning and an evening session) used
// only when a doctor has no chamber hours configured.
var DefaultWindows = []Window{
	{Start: "09:00", End: "12:00"},
	{Start: "17:00", End: "20:00"},
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(value string) (int, error) {
	hh, mm, ok := strings.Cut(value, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
// Values past midnight wrap around.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Generate returns the slot start labels between start and end. The loop
// tests the slot start, so the last slot may run past end.
func Generate(start, end string, duration int) ([]string, error) {
	intervals, err := generate(start, end, duration)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(intervals))
	for i, in := range intervals {
		labels[i] = in.Start
	}
	return labels, nil
}

// ForWindows generates slots for every window of one day, ordered by start
// time with duplicates from overlapping windows removed.
func ForWindows(windows []Window, duration int) ([]Interval, error) {
	var all []Interval
	seen := make(map[string]bool)

	for _, w := range windows {
		intervals, err := generate(w.Start, w.End, duration)
		if err != nil {
			return nil, err
		}
		for _, in := range intervals {
			if seen[in.Start] {
				continue
			}
			seen[in.Start] = true
			all = append(all, in)
		}
	}

	// HH:MM is zero-padded so lexical order is chronological
	sort.Slice(all, func(i, j int) bool { return all[i].Start < all[j].Start })
	return all, nil
}

// Default is the fallback day built from DefaultWindows.
func Default() []Interval {
	intervals, _ := ForWindows(DefaultWindows, DefaultDuration)
	return intervals
}

// Contains reports whether label is one of the generated slot starts.
func Contains(intervals []Interval, label string) bool {
	for _, in := range intervals {
		if in.Start == label {
			return true
		}
	}
	return false
}

func generate(start, end string, duration int) ([]Interval, error) {
	if duration == 0 {
		duration = DefaultDuration
	}
	if duration < 0 {
		return nil, ErrInvalidDuration
	}

	startMinutes, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	endMinutes, err := ParseClock(end)
	if err != nil {
		return nil, err
	}
	if startMinutes >= endMinutes {
		return nil, ErrInvalidWindow
	}

	intervals := make([]Interval, 0, (endMinutes-startMinutes+duration-1)/duration)
	for i := startMinutes; i < endMinutes; i += duration {
		intervals = append(intervals, Interval{
			Start: FormatClock(i),
			End:   FormatClock(i + duration),
		})
	}
	return intervals, nil
}
