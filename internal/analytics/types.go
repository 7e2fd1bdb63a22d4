package analytics

import (
	"time"
)

// Annualization constants shared by the metrics, correlation and benchmark
// calculations. Returns are interpolated onto an implied weekly compounding
// rate and annualized with √52.
const (
	// RiskFreeRate is the fixed annual risk-free rate used by the Sharpe
	// ratio.
	RiskFreeRate = 0.02
	// WeeksPerYear is the weekly annualization factor.
	WeeksPerYear = 52
	// DaysPerYear converts a day span to elapsed years.
	DaysPerYear = 365
	// MinAnnualizationDays is the shortest span for which an annualized
	// return is meaningful.
	MinAnnualizationDays = 7
)

// Window bounds a metrics computation to an inclusive date range. A zero
// Start or End leaves that side unbounded.
type Window struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// Metrics is the fixed record of point-in-time performance statistics for
// one product. Fields of type Value are unavailable when the underlying
// computation is ill-conditioned for the input (too few points, zero
// variance, span under seven days, no recovered drawdown). Numeric fields
// are rounded to two decimals at this boundary; presentation applies no
// further rounding of its own.
type Metrics struct {
	InceptionDate    time.Time `json:"inception_date"`
	ElapsedYears     float64   `json:"elapsed_years"`
	CumulativeReturn float64   `json:"cumulative_return_pct"`
	AnnualizedReturn Value     `json:"annualized_return_pct"`
	Volatility       Value     `json:"volatility_pct"`
	Sharpe           Value     `json:"sharpe_ratio"`
	MaxDrawdown      float64   `json:"max_drawdown_pct"`
	RecoveryDays     Value     `json:"max_drawdown_recovery_days"`

	// Trailing one-year fields, always computed against the full series
	// regardless of any Window passed to Compute.
	TrailingYearReturn     Value  `json:"trailing_year_return_pct"`
	TrailingYearVolatility Value  `json:"trailing_year_volatility_pct"`
	TrailingYearWindow     string `json:"trailing_year_window"`
}

// CorrelationMatrix is a symmetric pairwise return-correlation matrix with
// unit diagonal. Coefficients for degenerate (zero-variance) pairs are 0.0
// rather than unavailable so the matrix stays renderable.
type CorrelationMatrix struct {
	IDs          []string                      `json:"ids"`
	Coefficients map[string]map[string]float64 `json:"coefficients"`
}

// Coefficient returns the correlation between two product ids, and whether
// the pair is present in the matrix.
func (m *CorrelationMatrix) Coefficient(a, b string) (float64, bool) {
	row, ok := m.Coefficients[a]
	if !ok {
		return 0, false
	}
	c, ok := row[b]
	return c, ok
}
