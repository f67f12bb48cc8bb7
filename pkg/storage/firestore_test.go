package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(name string, createdAt time.Time) types.ProjectionRecord {
	breakEven := 2027
	return types.ProjectionRecord{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: createdAt,
		Request: types.ChargingRequest{
			VehicleGroups:        []types.VehicleGroup{{Class: "Delivery Van", Count: 10, DailyMileage: 30}},
			ChargerGroups:        []types.ChargerGroup{{Count: 5, KW: 7}},
			Behavior:             types.ChargingBehavior{Days: []string{"MON"}, StartTime: "21:00", EndTime: "06:00"},
			FossilFuelPrice:      4.3,
			FossilFuelMultiplier: 1.013,
		},
		Projection: types.Projection{
			GeneralInfo: types.GeneralInfo{TotalVehicles: 10, TDVEN: 187.5},
			AveragesAndSavings: types.AveragesAndSavings{
				AverageElectricMonthlyCost: types.Unavailable(),
				YearlySavings:              types.Value(1234.5),
			},
			YearlyCosts: map[string]types.YearlyCost{
				"2025": {TotalElectric: types.Value(100), TotalFossilFuel: 200, CumulativeDifference: types.Value(-100)},
			},
			BreakEvenYear: &breakEven,
		},
	}
}

func TestFirestoreProvider(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	// Use a random database for isolation
	randDB := fmt.Sprintf("test-db-%d", time.Now().UnixNano())
	f := &FirestoreProvider{
		projectID: "test-project-id",
		database:  randDB,
	}

	ctx := context.Background()
	require.NoError(t, f.Init(ctx))
	defer f.Close()

	t.Run("Validate", func(t *testing.T) {
		require.NoError(t, f.Validate())
	})

	// Firestore timestamps have microsecond precision
	now := time.Now().Truncate(time.Second).UTC()
	older := testRecord("older", now.Add(-time.Hour))
	newer := testRecord("newer", now)

	t.Run("SaveAndGet", func(t *testing.T) {
		require.NoError(t, f.SaveProjection(ctx, older))
		require.NoError(t, f.SaveProjection(ctx, newer))

		got, err := f.GetProjection(ctx, newer.ID)
		require.NoError(t, err)
		assert.Equal(t, newer.Name, got.Name)
		assert.True(t, newer.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, newer.Request, got.Request)
		assert.Equal(t, newer.Projection.AveragesAndSavings, got.Projection.AveragesAndSavings)
		assert.Equal(t, newer.Projection.YearlyCosts, got.Projection.YearlyCosts)
		require.NotNil(t, got.Projection.BreakEvenYear)
		assert.Equal(t, 2027, *got.Projection.BreakEvenYear)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := f.GetProjection(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrProjectionNotFound)
		_, err = f.GetProjection(ctx, "")
		assert.ErrorIs(t, err, ErrProjectionNotFound)
	})

	t.Run("EmptyID", func(t *testing.T) {
		r := testRecord("no id", now)
		r.ID = ""
		assert.Error(t, f.SaveProjection(ctx, r))
	})

	t.Run("List", func(t *testing.T) {
		list, err := f.ListProjections(ctx, 10)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
		assert.Equal(t, older.ID, list[1].ID)
		assert.Equal(t, types.Value(1234.5), list[0].YearlySavings)

		list, err = f.ListProjections(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, newer.ID, list[0].ID)
	})
}
