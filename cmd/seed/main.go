package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/chargeplan/chargeplan/pkg/controller"
	"github.com/chargeplan/chargeplan/pkg/fleet"
	"github.com/chargeplan/chargeplan/pkg/log"
	"github.com/chargeplan/chargeplan/pkg/storage"
	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/chargeplan/chargeplan/pkg/utility"
	"github.com/google/uuid"
	"github.com/levenlabs/go-lflag"
)

var (
	chargerSizesKW = []float64{7.2, 11.5, 19.2, 50, 150}
	dayPatterns    = [][]string{
		{"MON", "TUE", "WED", "THU", "FRI"},
		{"MON", "TUE", "WED", "THU", "FRI", "SAT"},
		{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"},
	}
	windows = [][2]string{
		{"18:00", "06:00"},
		{"21:00", "05:00"},
		{"08:00", "16:00"},
	}
)

func main() {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		os.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:8087")
	}
	rates := utility.Configured()
	classes := fleet.Configured()
	s := storage.Configured()
	c := controller.Configured(rates, classes)
	count := lflag.Int("seed-count", 10, "Number of sample projections to create")
	lflag.Configure()

	ctx := context.Background()
	defer func() {
		if err := s.Close(); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to close storage", slog.Any("error", err))
		}
	}()

	log.Ctx(ctx).InfoContext(ctx, "seeding sample projections", slog.Int("count", *count))

	// Use a new random source
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	available := classes.List()
	if len(available) == 0 {
		log.Ctx(ctx).ErrorContext(ctx, "no vehicle classes to seed from")
		os.Exit(1)
	}

	now := time.Now().UTC()
	for i := 0; i < *count; i++ {
		req := types.ChargingRequest{
			FossilFuelPrice:       3.5 + rng.Float64()*1.5,
			FossilFuelMultiplier:  types.DefaultFossilFuelMultiplier,
			TransformerCapacityKW: float64(250 * (1 + rng.Intn(4))),
		}
		for g := 0; g < 1+rng.Intn(3); g++ {
			class := available[rng.Intn(len(available))]
			req.VehicleGroups = append(req.VehicleGroups, types.VehicleGroup{
				Class:        class.Name,
				Count:        1 + rng.Intn(25),
				DailyMileage: float64(20 + rng.Intn(180)),
			})
		}
		for g := 0; g < 1+rng.Intn(2); g++ {
			req.ChargerGroups = append(req.ChargerGroups, types.ChargerGroup{
				Count: 1 + rng.Intn(10),
				KW:    chargerSizesKW[rng.Intn(len(chargerSizesKW))],
			})
		}
		window := windows[rng.Intn(len(windows))]
		req.Behavior = types.ChargingBehavior{
			Days:      dayPatterns[rng.Intn(len(dayPatterns))],
			StartTime: window[0],
			EndTime:   window[1],
		}

		projection, err := c.Project(ctx, req)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to project sample", slog.Any("error", err))
			os.Exit(1)
		}
		record := types.ProjectionRecord{
			ID:         uuid.NewString(),
			Name:       fmt.Sprintf("Sample fleet %d", i+1),
			CreatedAt:  now.Add(-time.Duration(i) * time.Hour),
			Request:    req,
			Projection: projection,
		}
		if err := s.SaveProjection(ctx, record); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to save sample", slog.Any("error", err))
			os.Exit(1)
		}
		log.Ctx(ctx).InfoContext(ctx, "seeded projection",
			slog.String("id", record.ID),
			slog.String("yearlySavings", projection.AveragesAndSavings.YearlySavings.String()),
		)
	}

	log.Ctx(ctx).InfoContext(ctx, "seeding complete")
}
