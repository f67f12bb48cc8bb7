package controller

import (
	"sort"
	"strconv"

	"github.com/chargeplan/chargeplan/pkg/types"
)

// summarize fills the yearly totals, averages and savings of a projection
// from its monthly results. Only scenario 1 is compared against the fossil
// fuel baseline.
func summarize(p *types.Projection, daysPerWeek int) {
	p.YearlyCosts = make(map[string]types.YearlyCost)
	var years []int

	electric := make([]types.Amount, 0, len(p.MonthlyResults))
	var fossil float64
	var activeDays int
	for _, r := range p.MonthlyResults {
		key := strconv.Itoa(r.Year)
		yc, ok := p.YearlyCosts[key]
		if !ok {
			yc.TotalElectric = types.Value(0)
			years = append(years, r.Year)
		}
		yc.TotalElectric = yc.TotalElectric.Add(r.ElectricCost())
		yc.TotalFossilFuel += r.FossilFuelMonthlyCost
		p.YearlyCosts[key] = yc

		electric = append(electric, r.ElectricCost())
		fossil += r.FossilFuelMonthlyCost
		activeDays += r.ActiveDays
	}

	sort.Ints(years)
	cumulative := types.Value(0)
	p.BreakEvenYear = nil
	for _, year := range years {
		key := strconv.Itoa(year)
		yc := p.YearlyCosts[key]
		cumulative = cumulative.Add(yc.TotalElectric.Sub(types.Value(yc.TotalFossilFuel)))
		yc.CumulativeDifference = cumulative
		p.YearlyCosts[key] = yc
		if v, ok := cumulative.Float64(); ok && v < 0 && p.BreakEvenYear == nil {
			y := year
			p.BreakEvenYear = &y
		}
	}

	var avg types.AveragesAndSavings
	if n := len(p.MonthlyResults); n > 0 {
		if total, ok := types.Sum(electric...).Float64(); ok {
			avg.AverageElectricMonthlyCost = types.Value(total / float64(n))
		}
		avg.AverageFossilFuelMonthlyCost = fossil / float64(n)
	}
	avg.MonthlySavings = types.Value(avg.AverageFossilFuelMonthlyCost).Sub(avg.AverageElectricMonthlyCost)
	avg.YearlySavings = avg.MonthlySavings.Scale(12)
	p.AveragesAndSavings = avg

	p.FossilFuelDailyAvgCost = 0
	if activeDays > 0 {
		p.FossilFuelDailyAvgCost = fossil / float64(activeDays)
	}
	p.FossilFuelWeeklyAvgCost = p.FossilFuelDailyAvgCost * float64(daysPerWeek)
}
