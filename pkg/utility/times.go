package utility

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock parses an HH:MM clock time into minutes past midnight. 24:00 is
// accepted and means the end of the day.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// TimeRange is a half-open [Start, End) span of a day in minutes past
// midnight. When End is before Start the range wraps past midnight. Equal
// Start and End cover the whole day.
type TimeRange struct {
	Start int
	End   int
}

// ParseTimeRange parses an HH:MM-HH:MM range.
func ParseTimeRange(s string) (TimeRange, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return TimeRange{}, fmt.Errorf("invalid time range %q: expected HH:MM-HH:MM", s)
	}
	start, err := ParseClock(from)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := ParseClock(to)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start % minutesPerDay, End: end % minutesPerDay}, nil
}

// Contains reports whether the minute of the day falls within the range.
func (r TimeRange) Contains(minute int) bool {
	minute %= minutesPerDay
	switch {
	case r.Start == r.End:
		return true
	case r.Start < r.End:
		return minute >= r.Start && minute < r.End
	default:
		return minute >= r.Start || minute < r.End
	}
}

func (r TimeRange) String() string {
	return formatClock(r.Start) + "-" + formatClock(r.End)
}

// MarshalText implements encoding.TextMarshaler so ranges read and write as
// HH:MM-HH:MM in both YAML and JSON.
func (r TimeRange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *TimeRange) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeRange(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
