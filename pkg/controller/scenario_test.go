package controller

import (
	"testing"

	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/chargeplan/chargeplan/pkg/utility"
	"github.com/stretchr/testify/assert"
)

func TestScenarioCost(t *testing.T) {
	rates := &utility.RateTable{Years: map[string]utility.YearRates{
		"2025": {
			BasicServiceFee: &utility.FeeTiers{Low: 100, High: 400},
			SubscriptionFee: &utility.FeeTiers{Low: 10, High: 20},
		},
	}}
	in := scenarioInput{
		year:          2025,
		rates:         rates,
		row:           utility.CategoryRates{types.OnPeak: 0.5, types.OffPeak: 0.2, types.SuperOffPeak: 0.1},
		tdven:         120,
		siteKW:        60,
		firstDayHours: types.CategoryHours{types.OnPeak: 1, types.OffPeak: 3, types.SuperOffPeak: 0},
		monthHours:    types.CategoryHours{types.OnPeak: 30, types.OffPeak: 90, types.SuperOffPeak: 10},
	}

	t.Run("per vehicle", func(t *testing.T) {
		s := Scenarios[0]
		cost := s.cost(in)
		assert.Equal(t, types.Value(30), cost.PowerRequirementKW)
		assert.Equal(t, types.Value(100), cost.BasicServiceFee)
		assert.Equal(t, types.Value(30), cost.SubscriptionFee)
		// 30 * (30*0.5 + 90*0.2 + 10*0.1)
		assert.InDelta(t, 30*34.0, cost.CommodityDistributionCost.Or(-1), 1e-9)
		assert.InDelta(t, 100+30+30*34.0, cost.TotalMonthlyCost.Or(-1), 1e-9)
	})

	t.Run("per site", func(t *testing.T) {
		cost := Scenarios[2].cost(in)
		assert.Equal(t, types.Value(60), cost.PowerRequirementKW)
		assert.Equal(t, types.Value(60), cost.SubscriptionFee)
		assert.InDelta(t, 60*34.0, cost.CommodityDistributionCost.Or(-1), 1e-9)
	})

	t.Run("no first day hours", func(t *testing.T) {
		in := in
		in.firstDayHours = types.NewCategoryHours()
		cost := Scenarios[1].cost(in)
		assert.False(t, cost.PowerRequirementKW.Available())
		assert.False(t, cost.BasicServiceFee.Available())
		assert.False(t, cost.SubscriptionFee.Available())
		assert.False(t, cost.CommodityDistributionCost.Available())
		assert.False(t, cost.TotalMonthlyCost.Available())
	})

	t.Run("off peak required", func(t *testing.T) {
		in := in
		in.monthHours = types.CategoryHours{types.OnPeak: 30, types.OffPeak: 0, types.SuperOffPeak: 0}
		cost := Scenarios[3].cost(in)
		assert.Equal(t, types.Value(60), cost.PowerRequirementKW)
		assert.True(t, cost.BasicServiceFee.Available())
		assert.False(t, cost.CommodityDistributionCost.Available())
		assert.False(t, cost.TotalMonthlyCost.Available())

		// the same hours are fine when On-Peak is allowed
		assert.True(t, Scenarios[2].cost(in).TotalMonthlyCost.Available())
	})

	t.Run("identities", func(t *testing.T) {
		ids := make([]types.ScenarioID, 0, len(Scenarios))
		for _, s := range Scenarios {
			ids = append(ids, s.ID)
		}
		assert.Equal(t, types.ScenarioIDs, ids)
		assert.Equal(t, PerVehicle, Scenarios[0].Metering)
		assert.Equal(t, PerVehicle, Scenarios[1].Metering)
		assert.Equal(t, PerSite, Scenarios[2].Metering)
		assert.Equal(t, PerSite, Scenarios[3].Metering)
		assert.NotContains(t, Scenarios[1].Priority, types.OnPeak)
		assert.NotContains(t, Scenarios[3].Priority, types.OnPeak)
	})
}
