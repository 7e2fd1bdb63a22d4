package scoring

import (
	"math"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/analytics"
)

// tier is one (threshold, score) band of an ordered step function.
type tier struct {
	threshold float64
	score     float64
}

// atLeast maps a higher-is-better metric through descending ≥ bands: the
// first band whose threshold the value meets decides the score, else 0.
func atLeast(bands []tier) func(float64) float64 {
	return func(v float64) float64 {
		for _, b := range bands {
			if v >= b.threshold {
				return b.score
			}
		}
		return 0
	}
}

// atMostAbs maps a risk metric through ascending ≤ bands on its absolute
// value: the first band that contains |v| decides the score, else 0.
func atMostAbs(bands []tier) func(float64) float64 {
	return func(v float64) float64 {
		a := math.Abs(v)
		for _, b := range bands {
			if a <= b.threshold {
				return b.score
			}
		}
		return 0
	}
}

// Category-specific threshold tables. Kept as data so each table is
// auditable on its own and testable through the two generic evaluators.
var (
	equityReturnTiers = []tier{{12, 100}, {8, 66}, {4, 33}}

	equityConsistencyTiers = []tier{{0.95, 100}, {0.90, 50}}
	equityVolatilityTiers  = []tier{{20, 100}, {25, 66}, {30, 33}}
	equityDrawdownTiers    = []tier{{20, 100}, {30, 75}, {40, 50}, {50, 25}}

	fixedIncomeReturnTiers      = []tier{{4, 100}, {2.5, 66}, {1.5, 33}}
	fixedIncomeExcessTiers      = []tier{{4, 100}, {2, 66}, {0, 33}}
	fixedIncomeConsistencyTiers = []tier{{0.97, 100}, {0.92, 50}}
	fixedIncomeVolatilityTiers  = []tier{{1, 100}, {2, 66}, {3.5, 33}}
	fixedIncomeDrawdownTiers    = []tier{{2, 100}, {4, 66}, {8, 33}}

	neutralArbitrageReturnTiers = []tier{{6, 100}, {4, 66}, {2, 33}}
	alternativeSharpeTiers      = []tier{{1.5, 100}, {1.0, 66}, {0.7, 33}}
	alternativeDrawdownTiers    = []tier{{5, 100}, {15, 66}, {30, 33}}

	monthlyWinRateTiers = []tier{{60, 100}, {50, 50}}
)

// rate applies a step function to an optional input. An unavailable input
// yields an unavailable score, never a forced zero.
func rate(v analytics.Value, fn func(float64) float64) analytics.Value {
	if !v.Valid() {
		return analytics.Unavailable()
	}
	return analytics.Avail(fn(v.Float64()))
}
