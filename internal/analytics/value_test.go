package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		in    float64
		valid bool
	}{
		{"finite", 12.5, true},
		{"zero", 0, true},
		{"negative", -3.75, true},
		{"nan", math.NaN(), false},
		{"positive inf", math.Inf(1), false},
		{"negative inf", math.Inf(-1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Avail(tt.in)
			assert.Equal(t, tt.valid, v.Valid())
			if tt.valid {
				assert.Equal(t, tt.in, v.Float64())
			}
		})
	}
}

func TestValueSub(t *testing.T) {
	a := Avail(10)
	b := Avail(4)

	diff := a.Sub(b)
	require.True(t, diff.Valid())
	assert.Equal(t, 6.0, diff.Float64())

	assert.False(t, a.Sub(Unavailable()).Valid())
	assert.False(t, Unavailable().Sub(b).Valid())
}

func TestValueRound2(t *testing.T) {
	assert.Equal(t, 3.14, Avail(3.14159).Round2().Float64())
	assert.Equal(t, -2.68, Avail(-2.678).Round2().Float64())
	assert.False(t, Unavailable().Round2().Valid())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "12.5", Avail(12.5).String())
	assert.Empty(t, Unavailable().String())
}

func TestValueJSON(t *testing.T) {
	t.Run("valid round trip", func(t *testing.T) {
		raw, err := json.Marshal(Avail(7.25))
		require.NoError(t, err)
		assert.JSONEq(t, `7.25`, string(raw))

		var v Value
		require.NoError(t, json.Unmarshal(raw, &v))
		require.True(t, v.Valid())
		assert.Equal(t, 7.25, v.Float64())
	})

	t.Run("unavailable encodes as null", func(t *testing.T) {
		raw, err := json.Marshal(Unavailable())
		require.NoError(t, err)
		assert.Equal(t, "null", string(raw))

		var v Value
		require.NoError(t, json.Unmarshal([]byte("null"), &v))
		assert.False(t, v.Valid())
	})
}
