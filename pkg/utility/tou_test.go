package utility

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRateTable(t *testing.T) {
	rt, err := DefaultRateTable()
	require.NoError(t, err)
	assert.NotEmpty(t, rt.Name)

	for year := 2025; year <= 2032; year++ {
		yr, ok := rt.exactYear(year)
		require.True(t, ok, "year %d", year)
		require.NotNil(t, yr.BasicServiceFee)
		require.NotNil(t, yr.SubscriptionFee)
	}

	row := rt.Year(2025).EnergyRates.Row(types.Weekdays, types.Winter)
	assert.Equal(t, 0.34, row[types.OnPeak])
	assert.Equal(t, 0.16, row[types.OffPeak])
	assert.Equal(t, 0.12, row[types.SuperOffPeak])

	weekend := rt.Schedule.Ranges(types.WeekendsAndHolidays, types.Summer)
	assert.Empty(t, weekend[types.OnPeak])
	assert.True(t, weekend.Contains(types.OffPeak, 17*60))
}

func TestRateTableYear(t *testing.T) {
	schedule := Schedule{types.Weekdays: {types.Winter: CategoryRanges{types.OffPeak: {{Start: 0, End: 0}}}}}
	rate := func(v float64) EnergyRates {
		return EnergyRates{types.Weekdays: {types.Winter: CategoryRates{types.OffPeak: v}}}
	}
	rt := &RateTable{
		Schedule: schedule,
		Years: map[string]YearRates{
			"2025": {EnergyRates: rate(0.1)},
			"2027": {EnergyRates: rate(0.3)},
		},
	}
	offPeak := func(year int) float64 {
		return rt.Year(year).EnergyRates.Row(types.Weekdays, types.Winter)[types.OffPeak]
	}

	assert.Equal(t, 0.1, offPeak(2025))
	assert.Equal(t, 0.1, offPeak(2026))
	assert.Equal(t, 0.3, offPeak(2027))
	assert.Equal(t, 0.3, offPeak(2040))
	assert.Equal(t, 0.1, offPeak(2020))
	assert.Equal(t, schedule, rt.Year(2026).Schedule)
}

func TestParseRateTable(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseRateTable([]byte("years: ["))
		assert.Error(t, err)
	})

	t.Run("no years", func(t *testing.T) {
		_, err := ParseRateTable([]byte("name: empty\n"))
		assert.Error(t, err)
	})

	t.Run("missing schedule", func(t *testing.T) {
		_, err := ParseRateTable([]byte(`
name: partial
years:
  "2025":
    energy_rates:
      Weekdays:
        Winter: {On-Peak: 0.3}
`))
		assert.Error(t, err)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := ParseRateTable([]byte(`
schedule:
  Weekdays:
    Winter:
      On-Peak: ["16:00"]
`))
		assert.Error(t, err)
	})
}

func TestLoadRateTable(t *testing.T) {
	ctx := context.Background()

	t.Run("embedded", func(t *testing.T) {
		rt, err := LoadRateTable(ctx, "")
		require.NoError(t, err)
		assert.Len(t, rt.Years, 8)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rates.yaml")
		require.NoError(t, os.WriteFile(path, defaultRates, 0o600))
		rt, err := LoadRateTable(ctx, path)
		require.NoError(t, err)
		assert.Len(t, rt.Years, 8)
	})

	t.Run("url", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(defaultRates)
		}))
		defer server.Close()
		rt, err := LoadRateTable(ctx, server.URL)
		require.NoError(t, err)
		assert.Len(t, rt.Years, 8)
	})
}
