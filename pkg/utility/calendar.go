package utility

import (
	"fmt"
	"strings"
	"time"

	"github.com/chargeplan/chargeplan/pkg/types"
)

// cutoffEpsilon absorbs floating point residue when the remaining energy
// need is an exact multiple of the charger power.
const cutoffEpsilon = 1e-9

// DetermineSeason returns the season of a month, judged by whether its 15th
// falls within June 1 through October 31.
func DetermineSeason(year int, month time.Month) types.Season {
	day := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	summerStart := time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	summerEnd := time.Date(year, time.October, 31, 0, 0, 0, 0, time.UTC)
	if !day.Before(summerStart) && !day.After(summerEnd) {
		return types.Summer
	}
	return types.Winter
}

// DayTypeFor classifies a weekday. No holiday calendar is modeled.
func DayTypeFor(day time.Weekday) types.DayType {
	if day == time.Saturday || day == time.Sunday {
		return types.WeekendsAndHolidays
	}
	return types.Weekdays
}

var weekdayNames = map[string]time.Weekday{
	"SUN": time.Sunday,
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
}

// ParseWeekday accepts abbreviations such as MON as well as full day names,
// in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) >= 3 {
		if d, ok := weekdayNames[s[:3]]; ok {
			full := strings.ToUpper(d.String())
			if s == s[:3] || s == full || (len(s) == 4 && strings.HasPrefix(full, s)) {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Weekdays is a set of selected days of the week.
type Weekdays [7]bool

// ParseWeekdays parses the selected days and returns any names it did not
// recognize.
func ParseWeekdays(days []string) (Weekdays, []string) {
	var set Weekdays
	var invalid []string
	for _, d := range days {
		wd, err := ParseWeekday(d)
		if err != nil {
			invalid = append(invalid, d)
			continue
		}
		set[wd] = true
	}
	return set, invalid
}

// Count returns the number of selected days.
func (w Weekdays) Count() int {
	var n int
	for _, ok := range w {
		if ok {
			n++
		}
	}
	return n
}

// ActiveDays returns the dates in the month whose weekday is selected.
func ActiveDays(year int, month time.Month, days Weekdays) []time.Time {
	var out []time.Time
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if days[d.Weekday()] {
			out = append(out, d)
		}
	}
	return out
}

// Window is the daily charging window, walked in whole hours from Start. A
// window whose start equals its end lasts 24 hours.
type Window struct {
	Start int
	End   int
}

// ParseWindow parses the start and end HH:MM clock times.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, fmt.Errorf("invalid charging start time: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, fmt.Errorf("invalid charging end time: %w", err)
	}
	return Window{Start: s % minutesPerDay, End: e % minutesPerDay}, nil
}

// Hours returns the number of whole hours in the window.
func (w Window) Hours() int {
	span := (w.End - w.Start + minutesPerDay) % minutesPerDay
	if span == 0 {
		span = minutesPerDay
	}
	return span / 60
}

// slot returns the minute of the day at which the i-th hour starts.
func (w Window) slot(i int) int {
	return (w.Start + i*60) % minutesPerDay
}

// AllocateHours walks the window hour by hour and credits each hour to the
// first category in priority whose ranges contain the hour's start. Hours in
// no allowed category are skipped. Each credited hour delivers chargerKW of
// energy and the walk stops once needKWH has been delivered. Pass math.Inf(1)
// to count every allowed hour.
func AllocateHours(ranges CategoryRanges, window Window, priority []types.TOUCategory, needKWH, chargerKW float64) types.CategoryHours {
	hours := types.NewCategoryHours()
	remaining := needKWH
	for i := 0; i < window.Hours(); i++ {
		if remaining <= cutoffEpsilon {
			break
		}
		minute := window.slot(i)
		for _, c := range priority {
			if ranges.Contains(c, minute) {
				hours[c]++
				remaining -= chargerKW
				break
			}
		}
	}
	return hours
}

// DayAllocator allocates charging hours for a single scenario priority across
// the days of a period.
type DayAllocator struct {
	Schedule  Schedule
	Season    types.Season
	Window    Window
	Priority  []types.TOUCategory
	NeedKWH   float64
	ChargerKW float64
}

// Day allocates hours for one calendar day using that day's day type.
func (a DayAllocator) Day(day time.Time) types.CategoryHours {
	ranges := a.Schedule.Ranges(DayTypeFor(day.Weekday()), a.Season)
	return AllocateHours(ranges, a.Window, a.Priority, a.NeedKWH, a.ChargerKW)
}

// Month sums the daily allocation over every active day.
func (a DayAllocator) Month(activeDays []time.Time) types.CategoryHours {
	total := types.NewCategoryHours()
	for _, day := range activeDays {
		total.Add(a.Day(day))
	}
	return total
}
