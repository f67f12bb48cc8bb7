package fleet

import (
	"fmt"
	"strings"
)

// VehicleClass describes the efficiency of one class of vehicle.
type VehicleClass struct {
	Name        string  `yaml:"name" json:"name"`
	MilesPerKWH float64 `yaml:"miles_per_kwh" json:"milesPerKWH"`
	MPG         float64 `yaml:"mpg" json:"mpg"`
}

// ClassTable maps vehicle class names to their efficiency. Lookups ignore
// case and surrounding space. It is read-only once built.
type ClassTable struct {
	classes []VehicleClass
	byName  map[string]VehicleClass
}

// NewClassTable builds a table from the given classes.
func NewClassTable(classes []VehicleClass) (*ClassTable, error) {
	t := &ClassTable{
		classes: make([]VehicleClass, 0, len(classes)),
		byName:  make(map[string]VehicleClass, len(classes)),
	}
	for _, c := range classes {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return nil, fmt.Errorf("vehicle class with empty name")
		}
		if c.MilesPerKWH <= 0 {
			return nil, fmt.Errorf("vehicle class %q: miles_per_kwh must be positive", c.Name)
		}
		if c.MPG <= 0 {
			return nil, fmt.Errorf("vehicle class %q: mpg must be positive", c.Name)
		}
		key := classKey(c.Name)
		if _, ok := t.byName[key]; ok {
			return nil, fmt.Errorf("duplicate vehicle class %q", c.Name)
		}
		t.byName[key] = c
		t.classes = append(t.classes, c)
	}
	return t, nil
}

func classKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the class with the given name.
func (t *ClassTable) Lookup(name string) (VehicleClass, bool) {
	c, ok := t.byName[classKey(name)]
	return c, ok
}

// List returns the classes in their configured order.
func (t *ClassTable) List() []VehicleClass {
	out := make([]VehicleClass, len(t.classes))
	copy(out, t.classes)
	return out
}
