package scoring

import (
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/analytics"
)

// Category identifies the product category whose standards a product is
// rated against. The set is closed; Valid gates anything arriving from the
// outside.
type Category string

const (
	CategoryEquity      Category = "equity"
	CategoryFixedIncome Category = "fixed_income"
	CategoryAlternative Category = "alternative"
)

// Valid reports whether the category is one of the known variants.
func (c Category) Valid() bool {
	switch c {
	case CategoryEquity, CategoryFixedIncome, CategoryAlternative:
		return true
	}
	return false
}

// Flags selects the sub-variant of a category's criteria and weight tables.
// IndexEnhanced applies to equity products, NeutralArbitrage to alternative
// strategies; each is ignored by the categories it does not concern.
type Flags struct {
	IndexEnhanced    bool `json:"index_enhanced"`
	NeutralArbitrage bool `json:"neutral_arbitrage"`
}

// Criterion names one scored dimension of a product.
type Criterion string

const (
	CriterionHistoricalReturn Criterion = "historical_return"
	CriterionExcessReturn     Criterion = "excess_return"
	CriterionConsistency      Criterion = "consistency"
	CriterionVolatility       Criterion = "volatility"
	CriterionMaxDrawdown      Criterion = "max_drawdown"
	CriterionSharpe           Criterion = "sharpe"
	CriterionMonthlyWinRate   Criterion = "monthly_win_rate"
)

// Inputs carries everything the scoring engine rates a product on. Metrics
// may be nil (the whole record absent), which leaves every metric-derived
// criterion unavailable rather than zero.
type Inputs struct {
	Metrics        *analytics.Metrics
	ExcessReturn   analytics.Value
	Consistency    analytics.Value
	MonthlyWinRate analytics.Value
}

// Result is the scoring breakdown for one product. Scores holds one entry
// per criterion in the category's table, unavailable where the underlying
// input was; Weights holds the matching weight table.
//
// Total is the weighted mean over the criteria whose score is available:
// unavailable criteria are excluded from both numerator and denominator, so
// the remaining weights are implicitly renormalized, so a missing criterion
// is not penalized to zero. When no criterion is available, Total is 0.
type Result struct {
	ProductID string                        `json:"product_id"`
	Category  Category                      `json:"category"`
	Flags     Flags                         `json:"flags"`
	Scores    map[Criterion]analytics.Value `json:"scores"`
	Weights   map[Criterion]float64         `json:"weights"`
	Total     float64                       `json:"total"`
}
