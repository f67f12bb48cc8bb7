package report

import (
	"bytes"
	"fmt"

	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/jung-kurt/gofpdf"
)

type pdfGenerator struct {
	fontName string
}

func (g *pdfGenerator) Generate(record types.ProjectionRecord) ([]byte, error) {
	p := record.Projection
	gi := p.GeneralInfo
	avg := p.AveragesAndSavings

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Fleet Charging Cost Projection", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", safeValue(record.Name), formatDate(record.CreatedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.section(pdf, "Fleet")
	lines := []string{
		fmt.Sprintf("Vehicles: %d, daily miles: %s, daily energy need: %s kWh", gi.TotalVehicles, formatFloat(gi.TotalDailyMilesDriven, 1), formatFloat(gi.TDVEN, 2)),
		fmt.Sprintf("Chargers: %d, capacity: %s kW", gi.TotalChargers, formatFloat(gi.TotalChargerCapacityKW, 1)),
		fmt.Sprintf("Fossil fuel average MPG: %s", formatFloat(gi.FossilFuelAverageMPG, 2)),
		fmt.Sprintf("Chargers cover all TOU hours: %s, off-peak hours: %s, transformer covers site: %s",
			yesNo(gi.ErrorChecks.ChargersCoverAllCategories),
			yesNo(gi.ErrorChecks.ChargersCoverOffPeak),
			yesNo(gi.ErrorChecks.TransformerCoversSite),
		),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	pdf.Ln(2)

	g.section(pdf, "Savings")
	lines = []string{
		fmt.Sprintf("Average electric monthly cost: $%s", formatMoney(avg.AverageElectricMonthlyCost)),
		fmt.Sprintf("Average fossil fuel monthly cost: $%s", formatFloat(avg.AverageFossilFuelMonthlyCost, 2)),
		fmt.Sprintf("Monthly savings: $%s, yearly savings: $%s", formatMoney(avg.MonthlySavings), formatMoney(avg.YearlySavings)),
		fmt.Sprintf("Fossil fuel daily average: $%s, weekly average: $%s", formatFloat(p.FossilFuelDailyAvgCost, 2), formatFloat(p.FossilFuelWeeklyAvgCost, 2)),
		fmt.Sprintf("Break-even year: %s", breakEven(p)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	pdf.Ln(2)

	g.section(pdf, "Yearly costs")
	widths := []float64{30, 60, 60, 60}
	g.tableRow(pdf, []string{"Year", "Electric", "Fossil fuel", "Cumulative difference"}, widths, true)
	for _, year := range sortedYears(p.YearlyCosts) {
		yc := p.YearlyCosts[year]
		g.tableRow(pdf, []string{
			year,
			formatMoney(yc.TotalElectric),
			formatFloat(yc.TotalFossilFuel, 2),
			formatMoney(yc.CumulativeDifference),
		}, widths, false)
	}

	pdf.AddPage()
	g.section(pdf, "Monthly costs")
	widths = []float64{20, 16, 22, 40, 40, 40, 40, 40}
	headers := []string{"Year", "Month", "Days"}
	for _, id := range types.ScenarioIDs {
		headers = append(headers, string(id))
	}
	headers = append(headers, "Fossil fuel")
	g.tableRow(pdf, headers, widths, true)
	for _, r := range p.MonthlyResults {
		row := []string{fmt.Sprint(r.Year), fmt.Sprint(r.Month), fmt.Sprint(r.ActiveDays)}
		for _, id := range types.ScenarioIDs {
			row = append(row, formatMoney(r.Scenarios[id].TotalMonthlyCost))
		}
		row = append(row, formatFloat(r.FossilFuelMonthlyCost, 2))
		g.tableRow(pdf, row, widths, false)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *pdfGenerator) section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
}

func (g *pdfGenerator) tableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(g.fontName, style, 9)
	for i, col := range cols {
		align := "R"
		if i == 0 || header {
			align = "C"
		}
		pdf.CellFormat(widths[i], 6, col, "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if value == "" {
		return "Untitled"
	}
	return value
}
