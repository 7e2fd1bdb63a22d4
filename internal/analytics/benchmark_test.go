package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/domain"
)

func TestNearestValue(t *testing.T) {
	s := domain.Series{
		{Date: date(2024, 1, 1), Value: 100},
		{Date: date(2024, 1, 11), Value: 110},
		{Date: date(2024, 1, 21), Value: 120},
	}

	t.Run("empty series", func(t *testing.T) {
		_, ok := NearestValue(nil, date(2024, 1, 1))
		assert.False(t, ok)
	})

	t.Run("exact match", func(t *testing.T) {
		v, ok := NearestValue(s, date(2024, 1, 11))
		require.True(t, ok)
		assert.Equal(t, 110.0, v)
	})

	t.Run("nearest wins", func(t *testing.T) {
		v, ok := NearestValue(s, date(2024, 1, 9))
		require.True(t, ok)
		assert.Equal(t, 110.0, v)
	})

	t.Run("tie picks the earlier point", func(t *testing.T) {
		// 2024-01-16 is 5 days from both neighbours.
		v, ok := NearestValue(s, date(2024, 1, 16))
		require.True(t, ok)
		assert.Equal(t, 110.0, v)
	})

	t.Run("target outside the series", func(t *testing.T) {
		v, ok := NearestValue(s, date(2025, 6, 1))
		require.True(t, ok)
		assert.Equal(t, 120.0, v)
	})
}

func TestExcessReturn(t *testing.T) {
	start := date(2023, 1, 1)
	end := start.AddDate(1, 0, 0)

	product := domain.Series{
		{Date: start, Value: 100},
		{Date: end, Value: 110},
	}
	benchmark := domain.Series{
		{Date: start, Value: 1000},
		{Date: end, Value: 1050},
	}

	t.Run("annualized spread", func(t *testing.T) {
		v := ExcessReturn(product, benchmark)
		require.True(t, v.Valid())
		// 10% vs 5% over exactly one year.
		assert.InDelta(t, 5.00, v.Float64(), 1e-9)
	})

	t.Run("benchmark sampled at nearest dates", func(t *testing.T) {
		// Benchmark points sit a few days off the product's endpoints.
		shifted := domain.Series{
			{Date: start.AddDate(0, 0, 3), Value: 1000},
			{Date: end.AddDate(0, 0, -3), Value: 1050},
		}
		v := ExcessReturn(product, shifted)
		require.True(t, v.Valid())
		assert.InDelta(t, 5.00, v.Float64(), 1e-9)
	})

	t.Run("short product history", func(t *testing.T) {
		assert.False(t, ExcessReturn(product[:1], benchmark).Valid())
	})

	t.Run("empty benchmark", func(t *testing.T) {
		assert.False(t, ExcessReturn(product, nil).Valid())
	})

	t.Run("span under the annualization floor", func(t *testing.T) {
		short := domain.Series{
			{Date: start, Value: 100},
			{Date: start.AddDate(0, 0, 3), Value: 101},
		}
		assert.False(t, ExcessReturn(short, benchmark).Valid())
	})
}

func TestMonthlyWinRate(t *testing.T) {
	monthly := func(values ...float64) domain.Series {
		s := make(domain.Series, len(values))
		for i, v := range values {
			// Last business-ish day of successive months.
			s[i] = domain.Point{Date: date(2024, 1, 28).AddDate(0, i, 0), Value: v}
		}
		return s
	}

	t.Run("one win out of two periods", func(t *testing.T) {
		product := monthly(100, 110, 105)
		benchmark := monthly(100, 105, 104)
		v := MonthlyWinRate(product, benchmark)
		require.True(t, v.Valid())
		assert.InDelta(t, 50.00, v.Float64(), 1e-9)
	})

	t.Run("identical series never wins", func(t *testing.T) {
		product := monthly(100, 104, 108)
		v := MonthlyWinRate(product, product)
		require.True(t, v.Valid())
		assert.Equal(t, 0.0, v.Float64())
	})

	t.Run("latest point represents the month", func(t *testing.T) {
		product := monthly(100, 110, 105)
		// A mid-month spike must not replace the month-end value.
		product = append(product, domain.Point{Date: date(2024, 2, 10), Value: 500})
		benchmark := monthly(100, 105, 104)
		v := MonthlyWinRate(product, benchmark)
		require.True(t, v.Valid())
		assert.InDelta(t, 50.00, v.Float64(), 1e-9)
	})

	t.Run("fewer than two common months", func(t *testing.T) {
		product := monthly(100, 110)
		benchmark := domain.Series{
			{Date: date(2024, 1, 15), Value: 100},
			{Date: date(2024, 1, 31), Value: 101},
		}
		assert.False(t, MonthlyWinRate(product, benchmark).Valid())
	})

	t.Run("short input", func(t *testing.T) {
		assert.False(t, MonthlyWinRate(monthly(100), monthly(100, 101)).Valid())
	})
}

func TestConsistency(t *testing.T) {
	start := date(2024, 1, 1)
	target := dailySeries(start, 100, 102, 99, 104, 103)
	byID := map[string]domain.Series{
		"target": target,
		// Scaled copy of the target: correlation 1.
		"twin": dailySeries(start, 200, 204, 198, 208, 206),
		// Constant series: the degenerate pair correlates at 0.
		"flat":  dailySeries(start, 50, 50, 50, 50, 50),
		"empty": nil,
	}

	t.Run("mean over valid peers", func(t *testing.T) {
		v := Consistency("target", []string{"twin", "flat"}, byID)
		require.True(t, v.Valid())
		assert.InDelta(t, 0.5, v.Float64(), 1e-9)
	})

	t.Run("self and empty peers excluded", func(t *testing.T) {
		v := Consistency("target", []string{"target", "empty", "twin"}, byID)
		require.True(t, v.Valid())
		assert.InDelta(t, 1.0, v.Float64(), 1e-9)
	})

	t.Run("no usable peer", func(t *testing.T) {
		assert.False(t, Consistency("target", []string{"target", "empty"}, byID).Valid())
	})
}
