package fleet

import (
	"context"
	"log/slog"

	"github.com/chargeplan/chargeplan/pkg/log"
	"github.com/chargeplan/chargeplan/pkg/types"
)

// DefaultMPG is the fleet fuel economy used when there are no vehicles.
const DefaultMPG = 15.0

// Totals are the fleet and charger figures every period of a projection is
// built from.
type Totals struct {
	TotalVehicles          int
	TotalDailyMiles        float64
	TotalChargers          int
	TotalChargerCapacityKW float64
	// TDVEN is the total daily vehicle energy need in kWh.
	TDVEN float64
	// AverageMPG is the fleet-weighted fuel economy of the fossil fuel
	// baseline.
	AverageMPG float64
	// UnknownClasses lists vehicle classes missing from the class table.
	UnknownClasses []string
}

// Aggregate totals the fleet and chargers of a request.
//
// Vehicles of an unknown class still count toward the vehicle and mileage
// totals but add no energy need and nothing to the MPG numerator, which
// lowers the fleet average MPG.
func Aggregate(ctx context.Context, req types.ChargingRequest, classes *ClassTable) Totals {
	var t Totals
	var mpgNumerator float64
	seen := make(map[string]bool)

	for _, g := range req.VehicleGroups {
		t.TotalVehicles += g.Count
		t.TotalDailyMiles += float64(g.Count) * g.DailyMileage

		class, ok := classes.Lookup(g.Class)
		if !ok {
			log.Ctx(ctx).WarnContext(ctx, "unknown vehicle class, skipping energy need",
				slog.String("class", g.Class),
				slog.Int("count", g.Count),
			)
			if !seen[g.Class] {
				seen[g.Class] = true
				t.UnknownClasses = append(t.UnknownClasses, g.Class)
			}
			continue
		}
		t.TDVEN += float64(g.Count) * g.DailyMileage / class.MilesPerKWH
		mpgNumerator += float64(g.Count) * class.MPG
	}

	for _, g := range req.ChargerGroups {
		t.TotalChargers += g.Count
		t.TotalChargerCapacityKW += float64(g.Count) * g.KW
	}

	switch {
	case req.FossilFuelEfficiency > 0:
		t.AverageMPG = req.FossilFuelEfficiency
	case t.TotalVehicles > 0:
		t.AverageMPG = mpgNumerator / float64(t.TotalVehicles)
	default:
		t.AverageMPG = DefaultMPG
	}
	return t
}
