package scoring

import (
	"fmt"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/analytics"
)

// Weight tables per category variant. Each table sums to 1.0; the criteria
// present in a table define the criteria scored for that variant.
var (
	equityWeights = map[Criterion]float64{
		CriterionHistoricalReturn: 0.22,
		CriterionExcessReturn:     0.22,
		CriterionConsistency:      0.22,
		CriterionVolatility:       0.12,
		CriterionMaxDrawdown:      0.22,
	}
	equityIndexEnhancedWeights = map[Criterion]float64{
		CriterionHistoricalReturn: 0.22,
		CriterionExcessReturn:     0.22,
		CriterionMonthlyWinRate:   0.10,
		CriterionConsistency:      0.22,
		CriterionVolatility:       0.12,
		CriterionMaxDrawdown:      0.12,
	}
	fixedIncomeWeights = map[Criterion]float64{
		CriterionHistoricalReturn: 0.22,
		CriterionExcessReturn:     0.22,
		CriterionConsistency:      0.22,
		CriterionVolatility:       0.12,
		CriterionMaxDrawdown:      0.22,
	}
	alternativeWeights = map[Criterion]float64{
		CriterionHistoricalReturn: 0.22,
		CriterionSharpe:           0.22,
		CriterionMonthlyWinRate:   0.22,
		CriterionConsistency:      0.22,
		CriterionMaxDrawdown:      0.12,
	}
)

// Score rates a product against its category's standards and returns the
// per-criterion breakdown plus the weighted total. The only error condition
// is an unknown category; data-quality problems in the inputs surface as
// unavailable scores, never as failures.
func Score(productID string, category Category, flags Flags, in Inputs) (*Result, error) {
	var scores map[Criterion]analytics.Value
	var weights map[Criterion]float64

	historicalReturn := analytics.Unavailable()
	volatility := analytics.Unavailable()
	maxDrawdown := analytics.Unavailable()
	sharpe := analytics.Unavailable()
	if in.Metrics != nil {
		historicalReturn = in.Metrics.AnnualizedReturn
		volatility = in.Metrics.TrailingYearVolatility
		maxDrawdown = analytics.Avail(in.Metrics.MaxDrawdown)
		sharpe = in.Metrics.Sharpe
	}

	switch category {
	case CategoryEquity:
		scores = map[Criterion]analytics.Value{
			CriterionHistoricalReturn: rate(historicalReturn, atLeast(equityReturnTiers)),
			CriterionExcessReturn:     rate(in.ExcessReturn, atLeast(equityReturnTiers)),
			CriterionConsistency:      rate(in.Consistency, atLeast(equityConsistencyTiers)),
			CriterionVolatility:       rate(volatility, atMostAbs(equityVolatilityTiers)),
			CriterionMaxDrawdown:      rate(maxDrawdown, atMostAbs(equityDrawdownTiers)),
		}
		weights = equityWeights
		if flags.IndexEnhanced {
			scores[CriterionMonthlyWinRate] = rate(in.MonthlyWinRate, atLeast(monthlyWinRateTiers))
			weights = equityIndexEnhancedWeights
		}

	case CategoryFixedIncome:
		scores = map[Criterion]analytics.Value{
			CriterionHistoricalReturn: rate(historicalReturn, atLeast(fixedIncomeReturnTiers)),
			CriterionExcessReturn:     rate(in.ExcessReturn, atLeast(fixedIncomeExcessTiers)),
			CriterionConsistency:      rate(in.Consistency, atLeast(fixedIncomeConsistencyTiers)),
			CriterionVolatility:       rate(volatility, atMostAbs(fixedIncomeVolatilityTiers)),
			CriterionMaxDrawdown:      rate(maxDrawdown, atMostAbs(fixedIncomeDrawdownTiers)),
		}
		weights = fixedIncomeWeights

	case CategoryAlternative:
		returnTiers := equityReturnTiers
		if flags.NeutralArbitrage {
			returnTiers = neutralArbitrageReturnTiers
		}
		scores = map[Criterion]analytics.Value{
			CriterionHistoricalReturn: rate(historicalReturn, atLeast(returnTiers)),
			CriterionSharpe:           rate(sharpe, atLeast(alternativeSharpeTiers)),
			CriterionMonthlyWinRate:   rate(in.MonthlyWinRate, atLeast(monthlyWinRateTiers)),
			CriterionConsistency:      rate(in.Consistency, atLeast(equityConsistencyTiers)),
			CriterionMaxDrawdown:      rate(maxDrawdown, atMostAbs(alternativeDrawdownTiers)),
		}
		weights = alternativeWeights

	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}

	return &Result{
		ProductID: productID,
		Category:  category,
		Flags:     flags,
		Scores:    scores,
		Weights:   weights,
		Total:     total(scores, weights),
	}, nil
}

// total is the weighted mean over the available criteria only: unavailable
// scores drop out of both numerator and denominator, implicitly
// renormalizing the remaining weights. Zero when nothing is available.
func total(scores map[Criterion]analytics.Value, weights map[Criterion]float64) float64 {
	var sum, weightSum float64
	for criterion, weight := range weights {
		score, ok := scores[criterion]
		if !ok || !score.Valid() {
			continue
		}
		sum += score.Float64() * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}
