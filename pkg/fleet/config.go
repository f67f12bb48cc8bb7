package fleet

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

//go:embed vehicle_classes.yaml
var defaultClasses []byte

// Configured registers the vehicle-classes flag and returns the class table
// it points at once flags are parsed.
func Configured() *ClassTable {
	source := lflag.String("vehicle-classes", "", "Path or http(s) URL of the vehicle class YAML (default: embedded classes)")

	t := &ClassTable{}
	lflag.Do(func() {
		loaded, err := LoadClassTable(context.Background(), *source)
		if err != nil {
			panic(fmt.Sprintf("failed to load vehicle classes: %v", err))
		}
		*t = *loaded
	})
	return t
}

// DefaultClassTable returns the embedded vehicle classes.
func DefaultClassTable() (*ClassTable, error) {
	return ParseClassTable(defaultClasses)
}

// LoadClassTable loads vehicle classes from a file or URL. An empty source
// returns the embedded classes.
func LoadClassTable(ctx context.Context, source string) (*ClassTable, error) {
	if source == "" {
		return DefaultClassTable()
	}
	b, err := common.Fetch(ctx, source, 30*time.Second)
	if err != nil {
		return nil, err
	}
	t, err := ParseClassTable(b)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle classes %s: %w", source, err)
	}
	log.Ctx(ctx).InfoContext(ctx, "loaded vehicle classes", slog.String("source", source), slog.Int("classes", len(t.classes)))
	return t, nil
}

// ParseClassTable decodes a YAML list of vehicle classes.
func ParseClassTable(b []byte) (*ClassTable, error) {
	var classes []VehicleClass
	if err := yaml.Unmarshal(b, &classes); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle classes: %w", err)
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("no vehicle classes defined")
	}
	return NewClassTable(classes)
}
