package analytics

import (
	"sort"
	"time"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/domain"
)

// Correlate aligns the given products on their common calendar dates and
// computes the pairwise Pearson correlation of their weekly returns. Returns
// nil when fewer than two ids are given, fewer than two dates are shared, or
// alignment leaves no return observations. That is structural absence, not
// an error. Zero-variance pairs get coefficient 0.0 so the matrix stays
// usable.
func Correlate(ids []string, seriesByID map[string]domain.Series) *CorrelationMatrix {
	if len(ids) < 2 {
		return nil
	}

	// Intersect the per-product calendar-date sets.
	counts := make(map[string]int)
	for _, id := range ids {
		seen := make(map[string]bool)
		for _, p := range seriesByID[id] {
			seen[p.Date.Format(domain.DateKey)] = true
		}
		for key := range seen {
			counts[key]++
		}
	}
	var common []string
	for key, n := range counts {
		if n == len(ids) {
			common = append(common, key)
		}
	}
	if len(common) < 2 {
		return nil
	}
	sort.Strings(common)

	// Align each product's values onto the common dates and derive returns.
	returns := make(map[string][]float64, len(ids))
	minLen := -1
	for _, id := range ids {
		byKey := make(map[string]float64, len(seriesByID[id]))
		for _, p := range seriesByID[id] {
			byKey[p.Date.Format(domain.DateKey)] = p.Value
		}
		aligned := make(domain.Series, len(common))
		for i, key := range common {
			date, _ := time.Parse(domain.DateKey, key)
			aligned[i] = domain.Point{Date: date, Value: byKey[key]}
		}
		rets := weeklyReturns(aligned)
		returns[id] = rets
		if minLen == -1 || len(rets) < minLen {
			minLen = len(rets)
		}
	}
	if minLen < 1 {
		return nil
	}
	for id := range returns {
		returns[id] = returns[id][:minLen]
	}

	matrix := &CorrelationMatrix{
		IDs:          append([]string(nil), ids...),
		Coefficients: make(map[string]map[string]float64, len(ids)),
	}
	for _, a := range ids {
		matrix.Coefficients[a] = make(map[string]float64, len(ids))
		for _, b := range ids {
			if a == b {
				matrix.Coefficients[a][b] = 1
				continue
			}
			matrix.Coefficients[a][b] = pearson(returns[a], returns[b])
		}
	}
	return matrix
}
