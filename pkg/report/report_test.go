package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testRecord() types.ProjectionRecord {
	breakEven := 2026
	cost := types.ScenarioCost{
		PowerRequirementKW: types.Value(28.57),
		TotalMonthlyCost:   types.Value(700),
	}
	unavailable := types.ScenarioCost{TotalMonthlyCost: types.Unavailable()}
	return types.ProjectionRecord{
		ID:        "0f8fad5b-d9cb-469f-a165-70867728950e",
		Name:      "Depot A / night",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Projection: types.Projection{
			GeneralInfo: types.GeneralInfo{TotalVehicles: 10, TDVEN: 85.71},
			MonthlyResults: []types.MonthlyResult{{
				Year:       2025,
				Month:      1,
				ActiveDays: 31,
				Season:     types.Winter,
				Scenarios: map[types.ScenarioID]types.ScenarioCost{
					types.Scenario1: cost,
					types.Scenario2: unavailable,
					types.Scenario3: cost,
					types.Scenario4: unavailable,
				},
				FossilFuelPrice:       4.3,
				FossilFuelMonthlyCost: 1999.5,
			}},
			AveragesAndSavings: types.AveragesAndSavings{
				AverageElectricMonthlyCost:   types.Value(700),
				AverageFossilFuelMonthlyCost: 1999.5,
				MonthlySavings:               types.Value(1299.5),
				YearlySavings:                types.Value(15594),
			},
			YearlyCosts: map[string]types.YearlyCost{
				"2026": {TotalElectric: types.Unavailable(), TotalFossilFuel: 100},
				"2025": {TotalElectric: types.Value(700), TotalFossilFuel: 1999.5, CumulativeDifference: types.Value(-1299.5)},
			},
			BreakEvenYear: &breakEven,
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat(" pdf ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	r := testRecord()
	assert.Equal(t, "Depot_A__night-0f8fad5b.xlsx", Filename(r, FormatXLSX))
	r.Name = ""
	assert.Equal(t, "projection-0f8fad5b.pdf", Filename(r, FormatPDF))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.00", formatFloat(0, 2))
	assert.Equal(t, "999.50", formatFloat(999.5, 2))
	assert.Equal(t, "1,999.50", formatFloat(1999.5, 2))
	assert.Equal(t, "-1,234,567.1", formatFloat(-1234567.1, 1))
	assert.Equal(t, types.NotAvailable, formatMoney(types.Unavailable()))
}

func TestGenerateExcel(t *testing.T) {
	b, err := NewGenerator().Generate(testRecord(), FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Monthly", "Yearly"}, f.GetSheetList())

	v, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Depot A / night", v)

	v, err = f.GetCellValue("Monthly", "G2")
	require.NoError(t, err)
	assert.Equal(t, types.NotAvailable, v)

	v, err = f.GetCellValue("Yearly", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025", v)
	v, err = f.GetCellValue("Yearly", "B3")
	require.NoError(t, err)
	assert.Equal(t, types.NotAvailable, v)
}

func TestGeneratePDF(t *testing.T) {
	b, err := NewGenerator().Generate(testRecord(), FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}

func TestGenerateUnknownFormat(t *testing.T) {
	_, err := NewGenerator().Generate(testRecord(), Format("csv"))
	assert.Error(t, err)
}
