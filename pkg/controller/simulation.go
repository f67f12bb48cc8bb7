package controller

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/chargeplan/chargeplan/pkg/fleet"
	"github.com/chargeplan/chargeplan/pkg/log"
	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/chargeplan/chargeplan/pkg/utility"
)

// plan is the request-wide input shared by every period.
type plan struct {
	totals     fleet.Totals
	window     utility.Window
	days       utility.Weekdays
	price      float64
	multiplier float64
	// transformerKW is the site transformer capacity.
	transformerKW float64
}

// period is the state of a single simulated month.
type period struct {
	year   int
	month  time.Month
	season types.Season
	active []time.Time
	rates  utility.YearRates
	// dayType is the day type of the first active day. Months with no active
	// day use weekday rates.
	dayType types.DayType
}

func (p period) firstDay() (time.Time, bool) {
	if len(p.active) == 0 {
		return time.Time{}, false
	}
	return p.active[0], true
}

// allocator returns the hour allocator for the period under priority.
func (p period) allocator(pl plan, priority []types.TOUCategory) utility.DayAllocator {
	return utility.DayAllocator{
		Schedule:  p.rates.Schedule,
		Season:    p.season,
		Window:    pl.window,
		Priority:  priority,
		NeedKWH:   pl.totals.TDVEN,
		ChargerKW: pl.totals.TotalChargerCapacityKW,
	}
}

// simulatePeriod evaluates every scenario and the fossil fuel baseline for
// one month of the horizon.
func (c *Controller) simulatePeriod(ctx context.Context, pl plan, year int, month time.Month) (types.MonthlyResult, types.CategoryHours) {
	p := period{
		year:    year,
		month:   month,
		season:  utility.DetermineSeason(year, month),
		active:  utility.ActiveDays(year, month, pl.days),
		rates:   c.rates.Year(year),
		dayType: types.Weekdays,
	}

	result := types.MonthlyResult{
		Year:       year,
		Month:      int(month),
		ActiveDays: len(p.active),
		Season:     p.season,
		TOUHours:   make(map[types.ScenarioID]types.CategoryHours, len(Scenarios)),
		Scenarios:  make(map[types.ScenarioID]types.ScenarioCost, len(Scenarios)),
	}
	first, hasActive := p.firstDay()
	if hasActive {
		p.dayType = utility.DayTypeFor(first.Weekday())
		result.RepresentativeDay = first.Format(time.DateOnly)
		result.DayType = p.dayType
	}
	row := p.rates.EnergyRates.Row(p.dayType, p.season)

	var firstDayHours types.CategoryHours
	for _, s := range Scenarios {
		alloc := p.allocator(pl, s.Priority)
		monthHours := alloc.Month(p.active)
		dayHours := types.NewCategoryHours()
		if hasActive {
			dayHours = alloc.Day(first)
		}
		if s.ID == types.Scenario1 {
			firstDayHours = dayHours
		}

		cost := s.cost(scenarioInput{
			year:          year,
			rates:         c.rates,
			row:           row,
			tdven:         pl.totals.TDVEN,
			siteKW:        pl.totals.TotalChargerCapacityKW,
			firstDayHours: dayHours,
			monthHours:    monthHours,
		})
		if !cost.TotalMonthlyCost.Available() {
			log.Ctx(ctx).DebugContext(ctx, "scenario cost unavailable",
				slog.String("scenario", string(s.ID)),
				slog.Int("year", year),
				slog.Int("month", int(month)),
			)
		}
		result.TOUHours[s.ID] = monthHours
		result.Scenarios[s.ID] = cost
	}

	result.FossilFuelPrice = pl.price * math.Pow(pl.multiplier, float64(year-c.horizon.StartYear))
	if pl.totals.AverageMPG > 0 {
		gallons := pl.totals.TotalDailyMiles * float64(len(p.active)) / pl.totals.AverageMPG
		result.FossilFuelMonthlyCost = gallons * result.FossilFuelPrice
	}
	result.ErrorChecks = c.errorChecks(pl, p, result.Scenarios[types.Scenario3].PowerRequirementKW)

	return result, firstDayHours
}

// errorChecks compares charger and transformer capacity against the fleet
// need on the period's representative day.
func (c *Controller) errorChecks(pl plan, p period, sitePower types.Amount) types.ErrorChecks {
	ranges := p.rates.Schedule.Ranges(p.dayType, p.season)
	capacity := pl.totals.TotalChargerCapacityKW
	uncapped := func(priority []types.TOUCategory) float64 {
		hours := utility.AllocateHours(ranges, pl.window, priority, math.Inf(1), capacity)
		return capacity * float64(hours.Total())
	}

	var checks types.ErrorChecks
	checks.ChargersCoverAllCategories = uncapped(allCategories) >= pl.totals.TDVEN
	checks.ChargersCoverOffPeak = uncapped(offPeakOnly) >= pl.totals.TDVEN
	if power, ok := sitePower.Float64(); ok {
		checks.TransformerCoversSite = pl.transformerKW > power
	}
	return checks
}
