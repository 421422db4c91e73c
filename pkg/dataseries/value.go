package dataseries

import (
	"encoding/json"
	"strconv"
)

// Value is a computed float that may be absent ("no value")
type Value struct {
	Float float64
	Valid bool
}

// None returns the "no value" marker
func None() Value {
	return Value{}
}

// Some wraps a computed float
func Some(f float64) Value {
	return Value{Float: f, Valid: true}
}

// Get returns the float and whether it is present
func (v Value) Get() (float64, bool) {
	return v.Float, v.Valid
}

func (v Value) String() string {
	if !v.Valid {
		return "none"
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

// MarshalJSON encodes absent values as null
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}
