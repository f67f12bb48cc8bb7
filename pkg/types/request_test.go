package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargingRequestUnmarshal(t *testing.T) {
	t.Run("full request", func(t *testing.T) {
		body := `{
			"vehicle_group_1_class": "Delivery Van",
			"vehicle_group_1_num": "10",
			"vehicle_group_1_mileage": 30,
			"vehicle_group_2_class": "Box 8",
			"vehicle_group_2_num": 2,
			"vehicle_group_2_mileage": "1,200",
			"charger_group_1_num": 5,
			"charger_group_1_kw": "7",
			"charging_behavior": {"days": ["MON", "TUE"], "startTime": "21:00", "endTime": "06:00"},
			"fossil_fuel_price": "3.99",
			"fossil_fuel_multiplier": 1.02,
			"fossil_fuel_efficiency": "",
			"transformer_capacity": 500
		}`
		var req ChargingRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		require.Len(t, req.VehicleGroups, 2)
		assert.Equal(t, VehicleGroup{Class: "Delivery Van", Count: 10, DailyMileage: 30}, req.VehicleGroups[0])
		assert.Equal(t, VehicleGroup{Class: "Box 8", Count: 2, DailyMileage: 1200}, req.VehicleGroups[1])
		require.Len(t, req.ChargerGroups, 1)
		assert.Equal(t, ChargerGroup{Count: 5, KW: 7}, req.ChargerGroups[0])
		assert.Equal(t, []string{"MON", "TUE"}, req.Behavior.Days)
		assert.Equal(t, "21:00", req.Behavior.StartTime)
		assert.Equal(t, "06:00", req.Behavior.EndTime)
		assert.Equal(t, 3.99, req.FossilFuelPrice)
		assert.Equal(t, 1.02, req.FossilFuelMultiplier)
		assert.Equal(t, 0.0, req.FossilFuelEfficiency)
		assert.Equal(t, 500.0, req.TransformerCapacityKW)
	})

	t.Run("defaults", func(t *testing.T) {
		var req ChargingRequest
		require.NoError(t, json.Unmarshal([]byte(`{"fossil_fuel_price": ""}`), &req))
		assert.Empty(t, req.VehicleGroups)
		assert.Empty(t, req.ChargerGroups)
		assert.Equal(t, DefaultFossilFuelPrice, req.FossilFuelPrice)
		assert.Equal(t, DefaultFossilFuelMultiplier, req.FossilFuelMultiplier)
		assert.Equal(t, DefaultChargingStartTime, req.Behavior.StartTime)
		assert.Equal(t, DefaultChargingEndTime, req.Behavior.EndTime)
		assert.Equal(t, 0.0, req.TransformerCapacityKW)
	})

	t.Run("groups need a positive integer count", func(t *testing.T) {
		body := `{
			"vehicle_group_1_class": "Shuttle", "vehicle_group_1_num": 0,
			"vehicle_group_2_class": "Shuttle", "vehicle_group_2_num": "2.5",
			"vehicle_group_3_class": "Shuttle", "vehicle_group_3_num": "-1",
			"vehicle_group_4_class": "Shuttle", "vehicle_group_4_num": "abc",
			"vehicle_group_5_class": "Shuttle", "vehicle_group_5_num": "3",
			"charger_group_1_num": "", "charger_group_1_kw": 19.2
		}`
		var req ChargingRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		require.Len(t, req.VehicleGroups, 1)
		assert.Equal(t, 3, req.VehicleGroups[0].Count)
		assert.Empty(t, req.ChargerGroups)
	})

	t.Run("behavior encoded as a string", func(t *testing.T) {
		body := `{"charging_behavior": "{\"days\": \"[\\\"SAT\\\",\\\"SUN\\\"]\", \"startTime\": \"08:00\", \"endTime\": \"16:00\"}"}`
		var req ChargingRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		assert.Equal(t, []string{"SAT", "SUN"}, req.Behavior.Days)
		assert.Equal(t, "08:00", req.Behavior.StartTime)
		assert.Equal(t, "16:00", req.Behavior.EndTime)
	})

	t.Run("malformed behavior becomes empty", func(t *testing.T) {
		var req ChargingRequest
		require.NoError(t, json.Unmarshal([]byte(`{"charging_behavior": "{not json"}`), &req))
		assert.Empty(t, req.Behavior.Days)
		assert.Equal(t, DefaultChargingStartTime, req.Behavior.StartTime)

		require.NoError(t, json.Unmarshal([]byte(`{"charging_behavior": {"days": "MON"}}`), &req))
		assert.Empty(t, req.Behavior.Days)
	})

	t.Run("invalid body", func(t *testing.T) {
		var req ChargingRequest
		assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &req))
	})
}

func TestChargingRequestRoundTrip(t *testing.T) {
	in := ChargingRequest{
		VehicleGroups: []VehicleGroup{{Class: "Refuse", Count: 4, DailyMileage: 80}},
		ChargerGroups: []ChargerGroup{{Count: 2, KW: 150}},
		Behavior:      ChargingBehavior{Days: []string{"MON"}, StartTime: "20:00", EndTime: "05:00"},
		FossilFuelPrice:       4.1,
		FossilFuelMultiplier:  1.01,
		FossilFuelEfficiency:  5,
		TransformerCapacityKW: 750,
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out ChargingRequest
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}
