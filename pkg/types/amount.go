package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NotAvailable is how an unavailable Amount is written on the wire.
const NotAvailable = "N/A"

// Amount is a power or money value that may be unavailable because the
// preconditions for computing it were not met (for example a scenario with no
// allocable charging hours). Any arithmetic with an unavailable operand
// yields an unavailable result.
//
// The zero value is unavailable.
type Amount struct {
	value float64
	valid bool
}

// Value returns an available Amount.
func Value(v float64) Amount {
	return Amount{value: v, valid: true}
}

// Unavailable returns an unavailable Amount.
func Unavailable() Amount {
	return Amount{}
}

// Available reports whether the amount holds a value.
func (a Amount) Available() bool {
	return a.valid
}

// Float64 returns the value and whether it is available.
func (a Amount) Float64() (float64, bool) {
	return a.value, a.valid
}

// Or returns the value, or def when unavailable.
func (a Amount) Or(def float64) float64 {
	if !a.valid {
		return def
	}
	return a.value
}

// Add returns a+b.
func (a Amount) Add(b Amount) Amount {
	if !a.valid || !b.valid {
		return Unavailable()
	}
	return Value(a.value + b.value)
}

// Sub returns a-b.
func (a Amount) Sub(b Amount) Amount {
	if !a.valid || !b.valid {
		return Unavailable()
	}
	return Value(a.value - b.value)
}

// Scale returns a*f.
func (a Amount) Scale(f float64) Amount {
	if !a.valid {
		return Unavailable()
	}
	return Value(a.value * f)
}

// Sum adds all the amounts. An empty sum is zero.
func Sum(amounts ...Amount) Amount {
	total := Value(0)
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func (a Amount) String() string {
	if !a.valid {
		return NotAvailable
	}
	return strconv.FormatFloat(a.value, 'f', -1, 64)
}

// MarshalJSON writes the value as a number or "N/A".
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(a.value)
}

// UnmarshalJSON accepts a number, "N/A" or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Unavailable()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == NotAvailable {
			*a = Unavailable()
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", s, err)
		}
		*a = Value(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	*a = Value(v)
	return nil
}
