package analytics

import (
	"sort"
	"time"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/domain"
)

// NearestValue returns the NAV whose date is closest to target, first match
// winning on ties. The second return is false for an empty series.
func NearestValue(series domain.Series, target time.Time) (float64, bool) {
	idx := series.NearestIndex(target)
	if idx < 0 {
		return 0, false
	}
	return series[idx].Value, true
}

// ExcessReturn is the product's annualized return minus the benchmark's
// annualized return over the product's own lifetime. The benchmark values at
// the product's start and end dates are taken by nearest-date lookup, and
// the same annualization formula and seven-day guard apply to both legs. Unavailability on either leg propagates through the subtraction.
func ExcessReturn(product, benchmark domain.Series) Value {
	if len(product) < 2 {
		return Unavailable()
	}
	start, end := product.First().Date, product.Last().Date
	days := domain.DaysBetween(start, end)
	if days < 0 {
		days = 0
	}
	years := float64(days) / DaysPerYear

	productCum := (product.Last().Value/product.First().Value - 1) * 100
	productAnn := annualize(productCum, days, years)

	benchStart, okStart := NearestValue(benchmark, start)
	benchEnd, okEnd := NearestValue(benchmark, end)
	if !okStart || !okEnd {
		return Unavailable()
	}
	benchCum := (benchEnd/benchStart - 1) * 100
	benchAnn := annualize(benchCum, days, years)

	return productAnn.Sub(benchAnn).Round2()
}

// Consistency is the arithmetic mean of the target's pairwise weekly-return
// correlations against a peer group. The target itself and peers with no
// series are excluded; pairs whose correlation is structurally absent (no
// overlapping dates) are skipped. Unavailable when no valid peer remains.
func Consistency(targetID string, peerIDs []string, seriesByID map[string]domain.Series) Value {
	sum := 0.0
	n := 0
	for _, peer := range peerIDs {
		if peer == targetID {
			continue
		}
		if len(seriesByID[peer]) == 0 {
			continue
		}
		matrix := Correlate([]string{targetID, peer}, seriesByID)
		if matrix == nil {
			continue
		}
		c, ok := matrix.Coefficient(targetID, peer)
		if !ok {
			continue
		}
		sum += c
		n++
	}
	if n == 0 {
		return Unavailable()
	}
	return Avail(sum / float64(n))
}

// MonthlyWinRate is the percentage of month-over-month periods in which the
// product's return beats the benchmark's. Each (year, month) is represented
// by the value at its latest date; only months present in both series count,
// and at least two common months are required.
func MonthlyWinRate(product, benchmark domain.Series) Value {
	if len(product) < 2 || len(benchmark) < 2 {
		return Unavailable()
	}

	productMonthly := monthEndValues(product)
	benchMonthly := monthEndValues(benchmark)

	var months []string
	for m := range productMonthly {
		if _, ok := benchMonthly[m]; ok {
			months = append(months, m)
		}
	}
	if len(months) < 2 {
		return Unavailable()
	}
	sort.Strings(months)

	wins := 0
	for i := 1; i < len(months); i++ {
		productReturn := productMonthly[months[i]]/productMonthly[months[i-1]] - 1
		benchReturn := benchMonthly[months[i]]/benchMonthly[months[i-1]] - 1
		if productReturn > benchReturn {
			wins++
		}
	}
	return Avail(float64(wins) / float64(len(months)-1) * 100).Round2()
}

// monthEndValues maps each "YYYY-MM" bucket to the value at the latest date
// within that month.
func monthEndValues(s domain.Series) map[string]float64 {
	latest := make(map[string]time.Time)
	values := make(map[string]float64)
	for _, p := range s {
		key := p.Date.Format("2006-01")
		if prev, ok := latest[key]; !ok || p.Date.After(prev) {
			latest[key] = p.Date
			values[key] = p.Value
		}
	}
	return values
}
