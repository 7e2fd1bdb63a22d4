package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/analytics"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/scoring"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}, {"3", "with,comma"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,\"with,comma\"\n", buf.String())
}

func TestWriteBOM(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, WriteOptions{Headers: []string{"a"}, BOMPrefix: true})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "metrics.csv")
	err := WriteFile(path, []string{"h"}, [][]string{{"v"}})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(raw), "h\nv\n")
}

func TestMetricsRow(t *testing.T) {
	t.Run("nil record", func(t *testing.T) {
		row := MetricsRow("fund-1", nil)
		require.Len(t, row, len(MetricsHeaders()))
		assert.Equal(t, "fund-1", row[0])
		for _, cell := range row[1:] {
			assert.Empty(t, cell)
		}
	})

	t.Run("full record", func(t *testing.T) {
		m := &analytics.Metrics{
			InceptionDate:          time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			ElapsedYears:           1.5,
			CumulativeReturn:       20.5,
			AnnualizedReturn:       analytics.Avail(13.2),
			Volatility:             analytics.Avail(11.8),
			Sharpe:                 analytics.Unavailable(),
			MaxDrawdown:            -8.4,
			RecoveryDays:           analytics.Avail(34),
			TrailingYearWindow:     "2023-06-15 – 2024-06-14",
			TrailingYearReturn:     analytics.Avail(9.1),
			TrailingYearVolatility: analytics.Unavailable(),
		}
		row := MetricsRow("fund-1", m)
		require.Len(t, row, len(MetricsHeaders()))
		assert.Equal(t, "2023-01-01", row[1])
		assert.Equal(t, "13.2", row[4])
		assert.Empty(t, row[6], "unavailable sharpe must be an empty cell")
		assert.Equal(t, "-8.4", row[7])
		assert.Equal(t, "34", row[8])
	})
}

func TestCorrelationTable(t *testing.T) {
	t.Run("nil matrix", func(t *testing.T) {
		headers, records := CorrelationTable(nil)
		assert.Nil(t, headers)
		assert.Nil(t, records)
	})

	t.Run("two products", func(t *testing.T) {
		m := &analytics.CorrelationMatrix{
			IDs: []string{"a", "b"},
			Coefficients: map[string]map[string]float64{
				"a": {"a": 1, "b": 0.25},
				"b": {"a": 0.25, "b": 1},
			},
		}
		headers, records := CorrelationTable(m)
		assert.Equal(t, []string{"product_id", "a", "b"}, headers)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"a", "1.0000", "0.2500"}, records[0])
	})
}

func TestScoringRow(t *testing.T) {
	r := &scoring.Result{
		ProductID: "fund-1",
		Category:  scoring.CategoryEquity,
		Scores: map[scoring.Criterion]analytics.Value{
			scoring.CriterionHistoricalReturn: analytics.Avail(66),
			scoring.CriterionExcessReturn:     analytics.Unavailable(),
			scoring.CriterionConsistency:      analytics.Avail(100),
			scoring.CriterionVolatility:       analytics.Avail(66),
			scoring.CriterionMaxDrawdown:      analytics.Avail(75),
		},
		Total: 76.75,
	}

	row := ScoringRow(r)
	require.Len(t, row, len(ScoringHeaders()))

	byHeader := map[string]string{}
	for i, h := range ScoringHeaders() {
		byHeader[h] = row[i]
	}
	assert.Equal(t, "fund-1", byHeader["product_id"])
	assert.Equal(t, "equity", byHeader["category"])
	assert.Equal(t, "66", byHeader["historical_return"])
	assert.Empty(t, byHeader["excess_return"], "unavailable criterion is an empty cell")
	assert.Empty(t, byHeader["sharpe"], "criterion outside the category table is empty")
	assert.Equal(t, "76.75", byHeader["total"])

	assert.False(t, strings.Contains(strings.Join(row, ","), "NaN"))
}
