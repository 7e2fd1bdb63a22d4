package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/infrastructure"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/scoring"
)

// workbook writes an upload-ready xlsx with weekly NAV observations
// starting at start.
func workbook(t *testing.T, start time.Time, values ...float64) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Net Value"}))
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := []interface{}{start.AddDate(0, 0, 7*i).Format("2006-01-02"), v}
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func newTestServices(t *testing.T) (*ProductService, *AnalysisService) {
	t.Helper()
	m := infrastructure.NewMetrics()
	products := NewProductServiceWithLogger(m, testLogger())
	analysis := NewAnalysisServiceWithLogger(products, m, testLogger())
	return products, analysis
}

func upload(t *testing.T, s *ProductService, name string, category scoring.Category, benchmark bool, values ...float64) *Product {
	t.Helper()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	p, err := s.Upload(context.Background(), name, category, scoring.Flags{}, benchmark, workbook(t, start, values...))
	require.NoError(t, err)
	return p
}

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		code      string
		wantStart time.Time
		wantErr   bool
	}{
		{"all", time.Time{}, false},
		{"", time.Time{}, false},
		{"5y", now.AddDate(-5, 0, 0), false},
		{"3y", now.AddDate(-3, 0, 0), false},
		{"1y", now.AddDate(-1, 0, 0), false},
		{"YTD", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"1m", now.AddDate(0, -1, 0), false},
		{"2w", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w, err := ResolveRange(tt.code, now)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.True(t, w.End.IsZero())
		})
	}
}

func TestProductLifecycle(t *testing.T) {
	products, _ := newTestServices(t)
	ctx := context.Background()

	a := upload(t, products, "Fund A", scoring.CategoryEquity, false, 1.0, 1.02, 1.01, 1.05)
	b := upload(t, products, "Index", scoring.CategoryEquity, true, 1.0, 1.01, 1.02, 1.03)

	assert.Equal(t, 4, a.Points)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), a.FirstDate)

	list := products.List(ctx)
	require.Len(t, list, 2)

	got, err := products.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Benchmark)

	require.NoError(t, products.Delete(ctx, a.ID))
	assert.Len(t, products.List(ctx), 1)

	err = products.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = products.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUploadRejectsBadInput(t *testing.T) {
	products, _ := newTestServices(t)
	ctx := context.Background()

	_, err := products.Upload(ctx, "x", scoring.Category("crypto"), scoring.Flags{}, false, bytes.NewBufferString(""))
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = products.Upload(ctx, "x", scoring.CategoryEquity, scoring.Flags{}, false, bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	products, analysis := newTestServices(t)
	ctx := context.Background()

	a := upload(t, products, "Fund A", scoring.CategoryEquity, false, 1.0, 1.02, 1.01, 1.05, 1.04)
	upload(t, products, "Fund B", scoring.CategoryEquity, false, 2.0, 2.04, 2.02, 2.10, 2.08)

	report, err := analysis.Analyze(ctx, nil, "all")
	require.NoError(t, err)
	require.Len(t, report.Products, 2)
	require.NotNil(t, report.Products[0].Metrics)
	assert.Equal(t, a.ID, report.Products[0].ProductID)

	require.NotNil(t, report.Correlations)
	c, ok := report.Correlations.Coefficient(report.Products[0].ProductID, report.Products[1].ProductID)
	require.True(t, ok)
	assert.InDelta(t, 1.0, c, 1e-9, "scaled copies correlate perfectly")
}

func TestAnalyzeErrors(t *testing.T) {
	products, analysis := newTestServices(t)
	ctx := context.Background()

	_, err := analysis.Analyze(ctx, nil, "all")
	assert.ErrorIs(t, err, ErrNoProducts)

	upload(t, products, "Fund A", scoring.CategoryEquity, false, 1.0, 1.02)

	_, err = analysis.Analyze(ctx, []string{"missing"}, "all")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = analysis.Analyze(ctx, nil, "2w")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestAnalyzeSingleProductHasNoMatrix(t *testing.T) {
	products, analysis := newTestServices(t)
	upload(t, products, "Fund A", scoring.CategoryEquity, false, 1.0, 1.02, 1.01)

	report, err := analysis.Analyze(context.Background(), nil, "all")
	require.NoError(t, err)
	assert.Nil(t, report.Correlations)
}

func TestScoreWithBenchmark(t *testing.T) {
	products, analysis := newTestServices(t)
	ctx := context.Background()

	fund := upload(t, products, "Fund A", scoring.CategoryEquity, false,
		1.0, 1.02, 1.01, 1.05, 1.04, 1.08, 1.07, 1.11)
	peer := upload(t, products, "Fund B", scoring.CategoryEquity, false,
		1.0, 1.01, 1.0, 1.03, 1.02, 1.05, 1.04, 1.07)
	bench := upload(t, products, "Index", scoring.CategoryEquity, true,
		1.0, 1.005, 1.0, 1.015, 1.01, 1.025, 1.02, 1.035)

	report, err := analysis.Score(ctx, nil, bench.ID)
	require.NoError(t, err)
	require.Len(t, report.Results, 2, "the benchmark itself is not scored")
	assert.Equal(t, bench.ID, report.BenchmarkID)

	byID := map[string]*scoring.Result{}
	for _, r := range report.Results {
		byID[r.ProductID] = r
	}
	require.Contains(t, byID, fund.ID)
	require.Contains(t, byID, peer.ID)

	r := byID[fund.ID]
	assert.True(t, r.Scores[scoring.CriterionExcessReturn].Valid())
	assert.True(t, r.Scores[scoring.CriterionConsistency].Valid())
	assert.Greater(t, r.Total, 0.0)
}

func TestScoreWithoutBenchmark(t *testing.T) {
	products, analysis := newTestServices(t)

	fund := upload(t, products, "Fund A", scoring.CategoryEquity, false,
		1.0, 1.02, 1.01, 1.05, 1.04)
	upload(t, products, "Fund B", scoring.CategoryEquity, false,
		1.0, 1.01, 1.0, 1.03, 1.02)

	report, err := analysis.Score(context.Background(), nil, "")
	require.NoError(t, err)

	var r *scoring.Result
	for _, res := range report.Results {
		if res.ProductID == fund.ID {
			r = res
		}
	}
	require.NotNil(t, r)
	assert.False(t, r.Scores[scoring.CriterionExcessReturn].Valid(),
		"no benchmark means no excess return, not a zero score")
}

func TestScoreErrors(t *testing.T) {
	products, analysis := newTestServices(t)
	ctx := context.Background()

	_, err := analysis.Score(ctx, nil, "")
	assert.ErrorIs(t, err, ErrNoProducts)

	upload(t, products, "Index", scoring.CategoryEquity, true, 1.0, 1.01, 1.02)

	_, err = analysis.Score(ctx, nil, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)

	// A store holding only benchmarks has nothing to score.
	_, err = analysis.Score(ctx, nil, "")
	assert.ErrorIs(t, err, ErrNoProducts)
}

func TestScoreMetricsAvailability(t *testing.T) {
	products, analysis := newTestServices(t)

	// Two observations give a return but no volatility.
	fund := upload(t, products, "Short", scoring.CategoryEquity, false, 1.0, 1.02)

	report, err := analysis.Score(context.Background(), []string{fund.ID}, "")
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	r := report.Results[0]
	assert.True(t, r.Scores[scoring.CriterionHistoricalReturn].Valid())
	assert.False(t, r.Scores[scoring.CriterionVolatility].Valid())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
