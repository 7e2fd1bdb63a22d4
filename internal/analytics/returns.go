package analytics

import (
	"math"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/domain"
)

// weeklyReturns converts consecutive observation pairs into implied weekly
// compounding rates. Irregular sampling gaps are geometrically interpolated:
// a pair N days apart contributes (v_i/v_{i-1})^(7/N) − 1, with the gap
// floored at one day and one week. This is not calendar-week bucketing;
// volatility, Sharpe and correlation all depend on this exact formula.
func weeklyReturns(s domain.Series) []float64 {
	if len(s) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		days := float64(domain.DaysBetween(s[i-1].Date, s[i].Date))
		if days < 1 {
			days = 1
		}
		weeks := days / 7
		if weeks < 1 {
			weeks = 1
		}
		out = append(out, math.Pow(s[i].Value/s[i-1].Value, 1/weeks)-1)
	}
	return out
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdDev is the ddof=1 standard deviation; undefined for fewer than
// two observations.
func sampleStdDev(xs []float64) (float64, bool) {
	n := len(xs)
	if n < 2 {
		return 0, false
	}
	m := mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1)), true
}

// pearson computes the Pearson correlation of two equal-length vectors.
// A zero-variance side yields 0.0 so degenerate pairs stay displayable.
func pearson(x, y []float64) float64 {
	mx, my := mean(x), mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}
