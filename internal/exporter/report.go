package exporter

import (
	"strconv"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/analytics"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/scoring"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/domain"
)

// MetricsHeaders is the column layout produced by MetricsRow.
func MetricsHeaders() []string {
	return []string{
		"product_id",
		"inception_date",
		"elapsed_years",
		"cumulative_return_pct",
		"annualized_return_pct",
		"volatility_pct",
		"sharpe_ratio",
		"max_drawdown_pct",
		"recovery_days",
		"trailing_year_window",
		"trailing_year_return_pct",
		"trailing_year_volatility_pct",
	}
}

// MetricsRow renders one product's metrics record. A nil record (product had
// too little history) yields the id followed by empty cells; unavailable
// statistics render as empty cells as well.
func MetricsRow(productID string, m *analytics.Metrics) []string {
	if m == nil {
		row := make([]string, len(MetricsHeaders()))
		row[0] = productID
		return row
	}
	return []string{
		productID,
		m.InceptionDate.Format(domain.DateKey),
		formatFloat(m.ElapsedYears),
		formatFloat(m.CumulativeReturn),
		m.AnnualizedReturn.String(),
		m.Volatility.String(),
		m.Sharpe.String(),
		formatFloat(m.MaxDrawdown),
		m.RecoveryDays.String(),
		m.TrailingYearWindow,
		m.TrailingYearReturn.String(),
		m.TrailingYearVolatility.String(),
	}
}

// CorrelationTable renders a correlation matrix as a header row plus one row
// per product, coefficients to four decimals. Nil when the matrix is absent.
func CorrelationTable(m *analytics.CorrelationMatrix) (headers []string, records [][]string) {
	if m == nil {
		return nil, nil
	}
	headers = append([]string{"product_id"}, m.IDs...)
	for _, row := range m.IDs {
		record := make([]string, 0, len(m.IDs)+1)
		record = append(record, row)
		for _, col := range m.IDs {
			c, ok := m.Coefficient(row, col)
			if !ok {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(c, 'f', 4, 64))
		}
		records = append(records, record)
	}
	return headers, records
}

// scoringCriteria fixes the column order of the per-criterion scores.
var scoringCriteria = []scoring.Criterion{
	scoring.CriterionHistoricalReturn,
	scoring.CriterionExcessReturn,
	scoring.CriterionSharpe,
	scoring.CriterionMonthlyWinRate,
	scoring.CriterionConsistency,
	scoring.CriterionVolatility,
	scoring.CriterionMaxDrawdown,
}

// ScoringHeaders is the column layout produced by ScoringRow.
func ScoringHeaders() []string {
	headers := []string{"product_id", "category"}
	for _, c := range scoringCriteria {
		headers = append(headers, string(c))
	}
	return append(headers, "total")
}

// ScoringRow renders one scoring result. Criteria outside the category's
// table, and criteria whose input was unavailable, render as empty cells.
func ScoringRow(r *scoring.Result) []string {
	row := []string{r.ProductID, string(r.Category)}
	for _, c := range scoringCriteria {
		row = append(row, r.Scores[c].String())
	}
	return append(row, strconv.FormatFloat(r.Total, 'f', 2, 64))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
