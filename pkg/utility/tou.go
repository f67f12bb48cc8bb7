package utility

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/chargeplan/chargeplan/pkg/types"
)

// CategoryRanges maps each TOU category to the time ranges it covers.
type CategoryRanges map[types.TOUCategory][]TimeRange

// Contains reports whether minute falls in any range of the category.
func (c CategoryRanges) Contains(category types.TOUCategory, minute int) bool {
	for _, r := range c[category] {
		if r.Contains(minute) {
			return true
		}
	}
	return false
}

// CategoryRates maps each TOU category to its energy rate in dollars per kWh.
type CategoryRates map[types.TOUCategory]float64

// Schedule holds category ranges by day type and season.
type Schedule map[types.DayType]map[types.Season]CategoryRanges

// Ranges returns the category ranges for a day type and season.
func (s Schedule) Ranges(dayType types.DayType, season types.Season) CategoryRanges {
	return s[dayType][season]
}

// EnergyRates holds category rates by day type and season.
type EnergyRates map[types.DayType]map[types.Season]CategoryRates

// Row returns the rates for a day type and season.
func (e EnergyRates) Row(dayType types.DayType, season types.Season) CategoryRates {
	return e[dayType][season]
}

// FeeTiers are the lower and upper tier of a two-tier fee.
type FeeTiers struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// YearRates are the rates in effect for a single calendar year. A nil
// Schedule uses the table-wide schedule.
type YearRates struct {
	Schedule        Schedule    `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	EnergyRates     EnergyRates `yaml:"energy_rates" json:"energyRates"`
	BasicServiceFee *FeeTiers   `yaml:"basic_service_fee,omitempty" json:"basicServiceFee,omitempty"`
	SubscriptionFee *FeeTiers   `yaml:"subscription_fee,omitempty" json:"subscriptionFee,omitempty"`
}

// RateTable is a utility's TOU rate plan across the projection horizon. It is
// read-only once loaded.
type RateTable struct {
	Name     string               `yaml:"name" json:"name"`
	Schedule Schedule             `yaml:"schedule" json:"schedule"`
	Years    map[string]YearRates `yaml:"years" json:"years"`
}

// Validate ensures every year has a complete schedule and rate row for each
// day type and season.
func (t *RateTable) Validate() error {
	if len(t.Years) == 0 {
		return fmt.Errorf("rate table %q has no years", t.Name)
	}
	for year, yr := range t.Years {
		if _, err := strconv.Atoi(year); err != nil {
			return fmt.Errorf("invalid rate table year %q", year)
		}
		schedule := yr.Schedule
		if schedule == nil {
			schedule = t.Schedule
		}
		for _, dt := range []types.DayType{types.Weekdays, types.WeekendsAndHolidays} {
			for _, s := range []types.Season{types.Summer, types.Winter} {
				if schedule.Ranges(dt, s) == nil {
					return fmt.Errorf("year %s: missing %s/%s schedule", year, dt, s)
				}
				row := yr.EnergyRates.Row(dt, s)
				if row == nil {
					return fmt.Errorf("year %s: missing %s/%s energy rates", year, dt, s)
				}
				for _, c := range types.TOUCategories {
					if row[c] < 0 {
						return fmt.Errorf("year %s: negative %s rate for %s/%s", year, c, dt, s)
					}
				}
			}
		}
	}
	return nil
}

// years returns the table's years in ascending order.
func (t *RateTable) years() []int {
	years := make([]int, 0, len(t.Years))
	for y := range t.Years {
		if n, err := strconv.Atoi(y); err == nil {
			years = append(years, n)
		}
	}
	sort.Ints(years)
	return years
}

// Year returns the rates for year. A year missing from the table uses the
// latest earlier year, or the earliest year when the table starts later.
func (t *RateTable) Year(year int) YearRates {
	if yr, ok := t.Years[strconv.Itoa(year)]; ok {
		return t.withSchedule(yr)
	}
	years := t.years()
	if len(years) == 0 {
		return YearRates{Schedule: t.Schedule}
	}
	pick := years[0]
	for _, y := range years {
		if y > year {
			break
		}
		pick = y
	}
	return t.withSchedule(t.Years[strconv.Itoa(pick)])
}

func (t *RateTable) withSchedule(yr YearRates) YearRates {
	if yr.Schedule == nil {
		yr.Schedule = t.Schedule
	}
	return yr
}

// exactYear returns the rates for year only when the table lists it.
func (t *RateTable) exactYear(year int) (YearRates, bool) {
	yr, ok := t.Years[strconv.Itoa(year)]
	return yr, ok
}
