package analytics

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is a statistic that may be unavailable. The original NaN-as-sentinel
// convention is replaced by an explicit tag so an unavailable value can never
// be silently summed or compared; every reduction over Values must decide
// what absence means for it.
type Value struct {
	value float64
	valid bool
}

// Avail returns an available Value. An infinite or NaN input collapses to
// unavailable, matching the guards the formulas already apply.
func Avail(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{value: v, valid: true}
}

// Unavailable returns the absent Value.
func Unavailable() Value {
	return Value{}
}

// Valid reports whether the statistic is available.
func (v Value) Valid() bool {
	return v.valid
}

// Float64 returns the numeric value; only meaningful when Valid.
func (v Value) Float64() float64 {
	return v.value
}

// Sub returns v−o, unavailable when either side is.
func (v Value) Sub(o Value) Value {
	if !v.valid || !o.valid {
		return Value{}
	}
	return Avail(v.value - o.value)
}

// Round2 rounds an available value to two decimals.
func (v Value) Round2() Value {
	if !v.valid {
		return v
	}
	return Avail(round2(v.value))
}

// String renders the value for tabular output; unavailable renders empty.
func (v Value) String() string {
	if !v.valid {
		return ""
	}
	return strconv.FormatFloat(v.value, 'f', -1, 64)
}

// MarshalJSON encodes an unavailable value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

// UnmarshalJSON decodes null as unavailable.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Avail(f)
	return nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
