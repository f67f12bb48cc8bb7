package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chargeplan/chargeplan/pkg/types"
)

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat parses an export format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Generator renders stored projections into downloadable reports.
type Generator struct {
	excel *excelGenerator
	pdf   *pdfGenerator
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{
		excel: &excelGenerator{},
		pdf:   &pdfGenerator{fontName: "Helvetica"},
	}
}

// Generate renders the record in the given format.
func (g *Generator) Generate(record types.ProjectionRecord, format Format) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return g.excel.Generate(record)
	case FormatPDF:
		return g.pdf.Generate(record)
	default:
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
}

// Filename returns the download name for the record.
func Filename(record types.ProjectionRecord, format Format) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, record.Name)
	if name == "" {
		name = "projection"
	}
	return fmt.Sprintf("%s-%s.%s", name, shortID(record.ID), format)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// sortedYears returns the yearly cost keys in ascending order.
func sortedYears(costs map[string]types.YearlyCost) []string {
	years := make([]string, 0, len(costs))
	for y := range costs {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool {
		a, _ := strconv.Atoi(years[i])
		b, _ := strconv.Atoi(years[j])
		return a < b
	})
	return years
}

func formatMoney(a types.Amount) string {
	v, ok := a.Float64()
	if !ok {
		return types.NotAvailable
	}
	return formatFloat(v, 2)
}

func formatFloat(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func breakEven(p types.Projection) string {
	if p.BreakEvenYear == nil {
		return "not reached"
	}
	return strconv.Itoa(*p.BreakEvenYear)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
