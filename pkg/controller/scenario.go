package controller

import (
	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/chargeplan/chargeplan/pkg/utility"
)

// Metering is how the utility meters the chargers of a scenario.
type Metering int

const (
	// PerVehicle sizes power from the fleet energy need spread over the
	// charging hours.
	PerVehicle Metering = iota
	// PerSite sizes power as the full charger capacity of the site.
	PerSite
)

// Scenario is a fixed charging policy. Priority is the ordered list of TOU
// categories charging may use; earlier categories win when ranges overlap.
type Scenario struct {
	ID       types.ScenarioID
	Managed  bool
	Metering Metering
	Priority []types.TOUCategory
	// RequiresOffPeak marks scenarios whose commodity cost is unavailable
	// when the month has no Off-Peak or Super Off-Peak hours.
	RequiresOffPeak bool
}

var (
	allCategories = []types.TOUCategory{types.OnPeak, types.OffPeak, types.SuperOffPeak}
	offPeakOnly   = []types.TOUCategory{types.OffPeak, types.SuperOffPeak}
)

// Scenarios are the four policies every period is evaluated under.
var Scenarios = []Scenario{
	{ID: types.Scenario1, Managed: true, Metering: PerVehicle, Priority: allCategories},
	{ID: types.Scenario2, Managed: false, Metering: PerVehicle, Priority: offPeakOnly, RequiresOffPeak: true},
	{ID: types.Scenario3, Managed: true, Metering: PerSite, Priority: allCategories},
	{ID: types.Scenario4, Managed: false, Metering: PerSite, Priority: offPeakOnly, RequiresOffPeak: true},
}

// scenarioInput is everything a scenario needs to price one period.
type scenarioInput struct {
	year   int
	rates  *utility.RateTable
	row    utility.CategoryRates
	tdven  float64
	siteKW float64
	// firstDayHours are the hours allocated on the period's first active day.
	firstDayHours types.CategoryHours
	monthHours    types.CategoryHours
}

// powerRequirement returns the kW the scenario must be provisioned for.
func (s Scenario) powerRequirement(in scenarioInput) types.Amount {
	if s.Metering == PerSite {
		return types.Value(in.siteKW)
	}
	hours := in.firstDayHours.Total()
	if hours == 0 {
		return types.Unavailable()
	}
	return types.Value(in.tdven / float64(hours))
}

// commodityCost prices the month's charging hours at the scenario's power.
func (s Scenario) commodityCost(in scenarioInput, power types.Amount) types.Amount {
	if s.RequiresOffPeak && in.monthHours[types.OffPeak]+in.monthHours[types.SuperOffPeak] == 0 {
		return types.Unavailable()
	}
	var weighted float64
	for _, c := range types.TOUCategories {
		weighted += float64(in.monthHours[c]) * in.row[c]
	}
	return power.Scale(weighted)
}

// cost returns the monthly cost breakdown of the scenario.
func (s Scenario) cost(in scenarioInput) types.ScenarioCost {
	power := s.powerRequirement(in)
	basic := in.rates.BasicServiceFee(in.year, power)
	subscription := in.rates.SubscriptionFee(in.year, power)
	commodity := s.commodityCost(in, power)
	return types.ScenarioCost{
		PowerRequirementKW:        power,
		BasicServiceFee:           basic,
		SubscriptionFee:           subscription,
		CommodityDistributionCost: commodity,
		TotalMonthlyCost:          types.Sum(basic, subscription, commodity),
	}
}
