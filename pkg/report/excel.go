package report

import (
	"fmt"

	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/xuri/excelize/v2"
)

type excelGenerator struct{}

func (g *excelGenerator) Generate(record types.ProjectionRecord) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	summarySheet := "Summary"
	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, summarySheet, record)

	for _, sheet := range []struct {
		name  string
		write func(*excelize.File, string, types.Projection)
	}{
		{"Monthly", g.writeMonthly},
		{"Yearly", g.writeYearly},
	} {
		if _, err := file.NewSheet(sheet.name); err != nil {
			return nil, err
		}
		sheet.write(file, sheet.name, record.Projection)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cellValue writes unavailable amounts as N/A and the rest as numbers.
func cellValue(a types.Amount) any {
	if v, ok := a.Float64(); ok {
		return v
	}
	return types.NotAvailable
}

func (g *excelGenerator) writeSummary(file *excelize.File, sheet string, record types.ProjectionRecord) {
	p := record.Projection
	gi := p.GeneralInfo
	avg := p.AveragesAndSavings

	set := func(cell string, value any) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	rows := []struct {
		label string
		value any
	}{
		{"Projection", record.Name},
		{"ID", record.ID},
		{"Created", formatDate(record.CreatedAt)},
		{"Total vehicles", gi.TotalVehicles},
		{"Total daily miles", gi.TotalDailyMilesDriven},
		{"Total chargers", gi.TotalChargers},
		{"Charger capacity (kW)", gi.TotalChargerCapacityKW},
		{"Daily vehicle energy need (kWh)", gi.TDVEN},
		{"Fossil fuel average MPG", gi.FossilFuelAverageMPG},
		{"Chargers cover all TOU hours", yesNo(gi.ErrorChecks.ChargersCoverAllCategories)},
		{"Chargers cover off-peak hours", yesNo(gi.ErrorChecks.ChargersCoverOffPeak)},
		{"Transformer covers site", yesNo(gi.ErrorChecks.TransformerCoversSite)},
		{"Average electric monthly cost", cellValue(avg.AverageElectricMonthlyCost)},
		{"Average fossil fuel monthly cost", avg.AverageFossilFuelMonthlyCost},
		{"Monthly savings", cellValue(avg.MonthlySavings)},
		{"Yearly savings", cellValue(avg.YearlySavings)},
		{"Fossil fuel daily average cost", p.FossilFuelDailyAvgCost},
		{"Fossil fuel weekly average cost", p.FossilFuelWeeklyAvgCost},
		{"Break-even year", breakEven(p)},
	}
	for i, row := range rows {
		set(fmt.Sprintf("A%d", i+1), row.label)
		set(fmt.Sprintf("B%d", i+1), row.value)
	}

	_ = file.SetColWidth(sheet, "A", "A", 36)
	_ = file.SetColWidth(sheet, "B", "B", 40)
}

func (g *excelGenerator) writeMonthly(file *excelize.File, sheet string, p types.Projection) {
	set := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Year", "Month", "Active days", "Season"}
	for _, id := range types.ScenarioIDs {
		headers = append(headers,
			fmt.Sprintf("%s power (kW)", id),
			fmt.Sprintf("%s total", id),
		)
	}
	headers = append(headers, "Fuel price", "Fossil fuel total")
	for i, header := range headers {
		set(i+1, 1, header)
	}

	for i, r := range p.MonthlyResults {
		row := i + 2
		col := 1
		next := func(value any) {
			set(col, row, value)
			col++
		}
		next(r.Year)
		next(r.Month)
		next(r.ActiveDays)
		next(string(r.Season))
		for _, id := range types.ScenarioIDs {
			cost := r.Scenarios[id]
			next(cellValue(cost.PowerRequirementKW))
			next(cellValue(cost.TotalMonthlyCost))
		}
		next(r.FossilFuelPrice)
		next(r.FossilFuelMonthlyCost)
	}

	_ = file.SetColWidth(sheet, "A", "D", 12)
	_ = file.SetColWidth(sheet, "E", "N", 20)
}

func (g *excelGenerator) writeYearly(file *excelize.File, sheet string, p types.Projection) {
	set := func(cell string, value any) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Year")
	set("B1", "Electric total")
	set("C1", "Fossil fuel total")
	set("D1", "Cumulative difference")
	for i, year := range sortedYears(p.YearlyCosts) {
		yc := p.YearlyCosts[year]
		row := i + 2
		set(fmt.Sprintf("A%d", row), year)
		set(fmt.Sprintf("B%d", row), cellValue(yc.TotalElectric))
		set(fmt.Sprintf("C%d", row), yc.TotalFossilFuel)
		set(fmt.Sprintf("D%d", row), cellValue(yc.CumulativeDifference))
	}

	_ = file.SetColWidth(sheet, "A", "A", 10)
	_ = file.SetColWidth(sheet, "B", "D", 22)
}
