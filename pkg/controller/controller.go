package controller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chargeplan/chargeplan/pkg/fleet"
	"github.com/chargeplan/chargeplan/pkg/log"
	"github.com/chargeplan/chargeplan/pkg/metrics"
	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/chargeplan/chargeplan/pkg/utility"
	"github.com/levenlabs/go-lflag"
)

// Horizon is the span of calendar years a projection covers.
type Horizon struct {
	StartYear int
	Years     int
}

// DefaultHorizon covers 2025 through 2032.
var DefaultHorizon = Horizon{StartYear: 2025, Years: 8}

// Periods returns the number of monthly periods in the horizon.
func (h Horizon) Periods() int {
	return h.Years * 12
}

// Controller computes charging cost projections against a rate table and
// vehicle class table. It holds no per-request state and is safe for
// concurrent use.
type Controller struct {
	rates   *utility.RateTable
	classes *fleet.ClassTable
	horizon Horizon
}

// NewController creates a new Controller.
func NewController(rates *utility.RateTable, classes *fleet.ClassTable, horizon Horizon) *Controller {
	return &Controller{
		rates:   rates,
		classes: classes,
		horizon: horizon,
	}
}

// Configured registers the horizon flags and returns a Controller using them.
func Configured(rates *utility.RateTable, classes *fleet.ClassTable) *Controller {
	startYear := lflag.Int("horizon-start-year", DefaultHorizon.StartYear, "First calendar year of each projection; fossil fuel prices escalate from it")
	years := lflag.Int("horizon-years", DefaultHorizon.Years, "Number of calendar years each projection covers")

	c := NewController(rates, classes, DefaultHorizon)
	lflag.Do(func() {
		if *years <= 0 {
			panic(fmt.Sprintf("horizon-years must be positive: %d", *years))
		}
		c.horizon = Horizon{StartYear: *startYear, Years: *years}
	})
	return c
}

// Horizon returns the projection horizon.
func (c *Controller) Horizon() Horizon {
	return c.horizon
}

// Rates returns the rate table projections are priced against.
func (c *Controller) Rates() *utility.RateTable {
	return c.rates
}

// Classes returns the vehicle class table.
func (c *Controller) Classes() *fleet.ClassTable {
	return c.classes
}

// Project runs the request through every monthly period of the horizon and
// summarizes the result. It fails only on an unusable charging window or
// horizon; missing or invalid numbers in the request fall back to defaults.
func (c *Controller) Project(ctx context.Context, req types.ChargingRequest) (types.Projection, error) {
	if c.horizon.Years <= 0 {
		return types.Projection{}, fmt.Errorf("invalid horizon: %d years", c.horizon.Years)
	}
	started := time.Now()
	req.ApplyDefaults()

	window, err := utility.ParseWindow(req.Behavior.StartTime, req.Behavior.EndTime)
	if err != nil {
		return types.Projection{}, err
	}
	days, invalid := utility.ParseWeekdays(req.Behavior.Days)
	if len(invalid) > 0 {
		log.Ctx(ctx).WarnContext(ctx, "ignoring unknown charging days", slog.Any("days", invalid))
	}

	totals := fleet.Aggregate(ctx, req, c.classes)
	if len(totals.UnknownClasses) > 0 {
		metrics.UnknownVehicleClassesTotal.Add(float64(len(totals.UnknownClasses)))
	}
	pl := plan{
		totals:        totals,
		window:        window,
		days:          days,
		price:         req.FossilFuelPrice,
		multiplier:    req.FossilFuelMultiplier,
		transformerKW: req.TransformerCapacityKW,
	}

	log.Ctx(ctx).DebugContext(ctx, "projection started",
		slog.Int("vehicles", totals.TotalVehicles),
		slog.Float64("tdven", totals.TDVEN),
		slog.Float64("chargerKW", totals.TotalChargerCapacityKW),
		slog.Int("windowHours", window.Hours()),
		slog.Int("days", days.Count()),
	)

	results := make([]types.MonthlyResult, 0, c.horizon.Periods())
	var firstDayHours types.CategoryHours
	var firstChecks *types.ErrorChecks
	for year := c.horizon.StartYear; year < c.horizon.StartYear+c.horizon.Years; year++ {
		for month := time.January; month <= time.December; month++ {
			result, dayHours := c.simulatePeriod(ctx, pl, year, month)
			if firstDayHours == nil && result.ActiveDays > 0 {
				firstDayHours = dayHours
				checks := result.ErrorChecks
				firstChecks = &checks
			}
			for _, s := range Scenarios {
				if !result.Scenarios[s.ID].TotalMonthlyCost.Available() {
					metrics.UnavailableScenarioPeriodsTotal.WithLabelValues(string(s.ID)).Inc()
				}
			}
			results = append(results, result)
		}
	}
	if firstDayHours == nil {
		firstDayHours = types.NewCategoryHours()
	}
	if firstChecks == nil {
		firstChecks = &results[0].ErrorChecks
	}

	projection := types.Projection{
		GeneralInfo: types.GeneralInfo{
			TotalVehicles:          totals.TotalVehicles,
			TotalDailyMilesDriven:  totals.TotalDailyMiles,
			TotalChargers:          totals.TotalChargers,
			TotalChargerCapacityKW: totals.TotalChargerCapacityKW,
			TDVEN:                  totals.TDVEN,
			FossilFuelAverageMPG:   totals.AverageMPG,
			UnknownVehicleClasses:  totals.UnknownClasses,
			FirstActiveDayTOUHours: firstDayHours,
			ErrorChecks:            *firstChecks,
		},
		MonthlyResults: results,
	}
	summarize(&projection, days.Count())

	metrics.ProjectionsTotal.Inc()
	metrics.ProjectionDurationSeconds.Observe(time.Since(started).Seconds())
	return projection, nil
}
