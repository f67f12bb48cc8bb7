package utility

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/chargeplan/chargeplan/pkg/common"
	"github.com/chargeplan/chargeplan/pkg/log"
	"github.com/levenlabs/go-lflag"
	"gopkg.in/yaml.v3"
)

//go:embed default_rates.yaml
var defaultRates []byte

// Configured registers the rate-table flag and returns the table it points
// at once flags are parsed.
func Configured() *RateTable {
	source := lflag.String("rate-table", "", "Path or http(s) URL of the TOU rate table YAML (default: embedded rate table)")

	t := &RateTable{}
	lflag.Do(func() {
		loaded, err := LoadRateTable(context.Background(), *source)
		if err != nil {
			panic(fmt.Sprintf("failed to load rate table: %v", err))
		}
		*t = *loaded
	})
	return t
}

// DefaultRateTable returns the embedded rate table.
func DefaultRateTable() (*RateTable, error) {
	return ParseRateTable(defaultRates)
}

// LoadRateTable loads the rate table from a file or URL. An empty source
// returns the embedded table.
func LoadRateTable(ctx context.Context, source string) (*RateTable, error) {
	if source == "" {
		return DefaultRateTable()
	}
	b, err := common.Fetch(ctx, source, 30*time.Second)
	if err != nil {
		return nil, err
	}
	t, err := ParseRateTable(b)
	if err != nil {
		return nil, fmt.Errorf("invalid rate table %s: %w", source, err)
	}
	log.Ctx(ctx).InfoContext(ctx, "loaded rate table", slog.String("source", source), slog.String("name", t.Name), slog.Int("years", len(t.Years)))
	return t, nil
}

// ParseRateTable decodes and validates a YAML rate table.
func ParseRateTable(b []byte) (*RateTable, error) {
	var t RateTable
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("failed to decode rate table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}
