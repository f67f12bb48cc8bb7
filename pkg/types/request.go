package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxGroups is the number of vehicle and charger groups a request may carry.
	MaxGroups = 5

	DefaultFossilFuelPrice      = 4.30
	DefaultFossilFuelMultiplier = 1.013
	DefaultChargingStartTime    = "18:00"
	DefaultChargingEndTime      = "06:00"
)

// VehicleGroup is a set of identical vehicles in the fleet.
type VehicleGroup struct {
	Class        string  `json:"class"`
	Count        int     `json:"num"`
	DailyMileage float64 `json:"mileage"`
}

// ChargerGroup is a set of identical chargers on the site.
type ChargerGroup struct {
	Count int     `json:"num"`
	KW    float64 `json:"kw"`
}

// ChargingBehavior describes when the fleet plugs in.
type ChargingBehavior struct {
	// Days holds weekday abbreviations such as MON or SAT.
	Days      []string `json:"days"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
}

// ChargingRequest is the input to a projection. It is decoded from the flat
// form-style JSON the calculator posts (vehicle_group_1_class, ...).
type ChargingRequest struct {
	VehicleGroups []VehicleGroup
	ChargerGroups []ChargerGroup
	Behavior      ChargingBehavior

	// FossilFuelPrice is the fuel price in dollars per gallon for the first
	// year of the horizon.
	FossilFuelPrice float64
	// FossilFuelMultiplier is applied once per year after the first.
	FossilFuelMultiplier float64
	// FossilFuelEfficiency overrides the fleet-weighted MPG when positive.
	FossilFuelEfficiency float64
	// TransformerCapacityKW is the available capacity of the site transformer.
	TransformerCapacityKW float64
}

// UnmarshalJSON decodes the flat request body. Numeric fields tolerate
// numbers, numeric strings, blanks and missing keys. Groups whose count is not
// a positive integer are dropped. A malformed charging_behavior becomes an
// empty behavior instead of failing the request.
func (r *ChargingRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	var req ChargingRequest
	for i := 1; i <= MaxGroups; i++ {
		prefix := "vehicle_group_" + strconv.Itoa(i) + "_"
		if count, ok := flexCount(raw[prefix+"num"]); ok {
			req.VehicleGroups = append(req.VehicleGroups, VehicleGroup{
				Class:        strings.TrimSpace(flexString(raw[prefix+"class"])),
				Count:        count,
				DailyMileage: flexFloat(raw[prefix+"mileage"]),
			})
		}
	}
	for i := 1; i <= MaxGroups; i++ {
		prefix := "charger_group_" + strconv.Itoa(i) + "_"
		if count, ok := flexCount(raw[prefix+"num"]); ok {
			req.ChargerGroups = append(req.ChargerGroups, ChargerGroup{
				Count: count,
				KW:    flexFloat(raw[prefix+"kw"]),
			})
		}
	}

	req.Behavior = parseBehavior(raw["charging_behavior"])
	req.FossilFuelPrice = flexFloat(raw["fossil_fuel_price"])
	req.FossilFuelMultiplier = flexFloat(raw["fossil_fuel_multiplier"])
	req.FossilFuelEfficiency = flexFloat(raw["fossil_fuel_efficiency"])
	req.TransformerCapacityKW = flexFloat(raw["transformer_capacity"])
	req.ApplyDefaults()

	*r = req
	return nil
}

// MarshalJSON writes the request back in the flat form it was read from.
func (r ChargingRequest) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 3*MaxGroups+2*MaxGroups+5)
	for i, g := range r.VehicleGroups {
		if i >= MaxGroups {
			break
		}
		prefix := "vehicle_group_" + strconv.Itoa(i+1) + "_"
		out[prefix+"class"] = g.Class
		out[prefix+"num"] = g.Count
		out[prefix+"mileage"] = g.DailyMileage
	}
	for i, g := range r.ChargerGroups {
		if i >= MaxGroups {
			break
		}
		prefix := "charger_group_" + strconv.Itoa(i+1) + "_"
		out[prefix+"num"] = g.Count
		out[prefix+"kw"] = g.KW
	}
	days := r.Behavior.Days
	if days == nil {
		days = []string{}
	}
	out["charging_behavior"] = ChargingBehavior{
		Days:      days,
		StartTime: r.Behavior.StartTime,
		EndTime:   r.Behavior.EndTime,
	}
	out["fossil_fuel_price"] = r.FossilFuelPrice
	out["fossil_fuel_multiplier"] = r.FossilFuelMultiplier
	if r.FossilFuelEfficiency > 0 {
		out["fossil_fuel_efficiency"] = r.FossilFuelEfficiency
	}
	out["transformer_capacity"] = r.TransformerCapacityKW
	return json.Marshal(out)
}

// ApplyDefaults fills in the documented defaults for missing values.
func (r *ChargingRequest) ApplyDefaults() {
	if r.FossilFuelPrice <= 0 {
		r.FossilFuelPrice = DefaultFossilFuelPrice
	}
	if r.FossilFuelMultiplier <= 0 {
		r.FossilFuelMultiplier = DefaultFossilFuelMultiplier
	}
	if r.FossilFuelEfficiency < 0 {
		r.FossilFuelEfficiency = 0
	}
	if r.TransformerCapacityKW < 0 {
		r.TransformerCapacityKW = 0
	}
	if strings.TrimSpace(r.Behavior.StartTime) == "" {
		r.Behavior.StartTime = DefaultChargingStartTime
	}
	if strings.TrimSpace(r.Behavior.EndTime) == "" {
		r.Behavior.EndTime = DefaultChargingEndTime
	}
}

func parseBehavior(raw json.RawMessage) ChargingBehavior {
	raw = unwrapJSONString(raw)
	if len(raw) == 0 {
		return ChargingBehavior{}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ChargingBehavior{}
	}

	var b ChargingBehavior
	b.StartTime = strings.TrimSpace(flexString(fields["startTime"]))
	b.EndTime = strings.TrimSpace(flexString(fields["endTime"]))
	if days := unwrapJSONString(fields["days"]); len(days) > 0 {
		if err := json.Unmarshal(days, &b.Days); err != nil {
			b.Days = nil
		}
	}
	return b
}

// unwrapJSONString returns the contents of raw when it is a JSON string
// holding JSON itself, which is how some form encoders post nested objects.
func unwrapJSONString(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] != '"' {
		return raw
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}

func flexString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// flexFloat coerces raw to a float, returning 0 for anything unusable.
func flexFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// flexCount returns the count only when it is a positive integer.
func flexCount(raw json.RawMessage) (int, bool) {
	f := flexFloat(raw)
	if f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
