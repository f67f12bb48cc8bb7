package types

import (
	"time"
)

// ScenarioID names one of the four charging policy scenarios.
type ScenarioID string

const (
	Scenario1 ScenarioID = "scenario_1"
	Scenario2 ScenarioID = "scenario_2"
	Scenario3 ScenarioID = "scenario_3"
	Scenario4 ScenarioID = "scenario_4"
)

// ScenarioIDs lists the scenarios in display order.
var ScenarioIDs = []ScenarioID{Scenario1, Scenario2, Scenario3, Scenario4}

// ScenarioCost is the monthly cost breakdown of a single scenario.
type ScenarioCost struct {
	PowerRequirementKW        Amount `json:"power_requirement"`
	BasicServiceFee           Amount `json:"basic_service_fee"`
	SubscriptionFee           Amount `json:"subscription_fee"`
	CommodityDistributionCost Amount `json:"commodity_distribution_cost"`
	TotalMonthlyCost          Amount `json:"electric_monthly_tc"`
}

// ErrorChecks holds informational capacity checks. They never change costs.
type ErrorChecks struct {
	// ChargersCoverAllCategories is true when the site charger capacity over
	// every hour of the charging window covers the daily energy need.
	ChargersCoverAllCategories bool `json:"charger_cover_scenarios_1_and_3_flag"`
	// ChargersCoverOffPeak is the same check restricted to Off-Peak and Super
	// Off-Peak hours.
	ChargersCoverOffPeak bool `json:"charger_cover_scenarios_2_and_4_flag"`
	// TransformerCoversSite is true when the transformer capacity exceeds the
	// scenario 3 power requirement.
	TransformerCoversSite bool `json:"transformer_capacity_flag"`
}

// MonthlyResult is the outcome of a single (year, month) period.
type MonthlyResult struct {
	Year              int     `json:"year"`
	Month             int     `json:"month"`
	ActiveDays        int     `json:"active_days"`
	Season            Season  `json:"season"`
	RepresentativeDay string  `json:"representative_day,omitempty"`
	DayType           DayType `json:"day_type,omitempty"`

	TOUHours  map[ScenarioID]CategoryHours `json:"tou_hours"`
	Scenarios map[ScenarioID]ScenarioCost  `json:"scenarios"`

	FossilFuelPrice       float64     `json:"fossil_fuel_price"`
	FossilFuelMonthlyCost float64     `json:"fossil_fuel_monthly_tc"`
	ErrorChecks           ErrorChecks `json:"error_checks"`
}

// ElectricCost returns the scenario 1 total, which drives every comparison.
func (m MonthlyResult) ElectricCost() Amount {
	return m.Scenarios[Scenario1].TotalMonthlyCost
}

// GeneralInfo summarizes the fleet and site.
type GeneralInfo struct {
	TotalVehicles          int           `json:"total_vehicles"`
	TotalDailyMilesDriven  float64       `json:"total_daily_miles_driven"`
	TotalChargers          int           `json:"total_chargers"`
	TotalChargerCapacityKW float64       `json:"total_charger_capacity"`
	TDVEN                  float64       `json:"TDVEN"`
	FossilFuelAverageMPG   float64       `json:"fossil_fuel_average_mpg"`
	UnknownVehicleClasses  []string      `json:"unknown_vehicle_classes,omitempty"`
	FirstActiveDayTOUHours CategoryHours `json:"first_active_day_tou_hours"`
	ErrorChecks            ErrorChecks   `json:"error_checks"`
}

// AveragesAndSavings compares scenario 1 against the fossil fuel baseline.
type AveragesAndSavings struct {
	AverageElectricMonthlyCost   Amount  `json:"average_electric_monthly_cost"`
	AverageFossilFuelMonthlyCost float64 `json:"average_fossil_fuel_monthly_cost"`
	MonthlySavings               Amount  `json:"monthly_savings"`
	YearlySavings                Amount  `json:"yearly_savings"`
}

// YearlyCost totals a calendar year of the horizon.
type YearlyCost struct {
	TotalElectric        Amount  `json:"total_electric_tc"`
	TotalFossilFuel      float64 `json:"total_fossil_fuel_tc"`
	CumulativeDifference Amount  `json:"cumulative_difference"`
}

// Projection is the complete result of a charging cost projection.
type Projection struct {
	GeneralInfo        GeneralInfo           `json:"general_info"`
	MonthlyResults     []MonthlyResult       `json:"monthly_results"`
	AveragesAndSavings AveragesAndSavings    `json:"averages_and_savings"`
	YearlyCosts        map[string]YearlyCost `json:"yearly_costs"`
	// BreakEvenYear is the first year where cumulative electric cost drops
	// below cumulative fossil fuel cost, or nil if it never does.
	BreakEvenYear *int `json:"break_even_year"`

	FossilFuelDailyAvgCost  float64 `json:"fossil_fuel_daily_avg_cost"`
	FossilFuelWeeklyAvgCost float64 `json:"fossil_fuel_weekly_avg_cost"`
}

// ProjectionRecord is a stored projection along with the request that
// produced it.
type ProjectionRecord struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CreatedAt  time.Time       `json:"createdAt"`
	Request    ChargingRequest `json:"request"`
	Projection Projection      `json:"projection"`
}

// Summary returns the listing view of the record.
func (r ProjectionRecord) Summary() ProjectionSummary {
	return ProjectionSummary{
		ID:            r.ID,
		Name:          r.Name,
		CreatedAt:     r.CreatedAt,
		TotalVehicles: r.Projection.GeneralInfo.TotalVehicles,
		YearlySavings: r.Projection.AveragesAndSavings.YearlySavings,
		BreakEvenYear: r.Projection.BreakEvenYear,
	}
}

// ProjectionSummary is the listing view of a stored projection.
type ProjectionSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	TotalVehicles int       `json:"totalVehicles"`
	YearlySavings Amount    `json:"yearlySavings"`
	BreakEvenYear *int      `json:"breakEvenYear,omitempty"`
}
