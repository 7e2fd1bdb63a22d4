// Command navreport runs the full analysis offline: it loads every NAV
// workbook from a directory, computes metrics, correlations and scores, and
// writes the three CSV reports without starting the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/config"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/exporter"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/infrastructure"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/scoring"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/services"
)

func main() {
	inputDir := flag.String("in", ".", "directory containing NAV workbooks (*.xlsx)")
	outputDir := flag.String("out", "", "output directory for CSV reports (defaults to the configured reports dir)")
	category := flag.String("category", "equity", "product category for the loaded workbooks (equity, fixed_income, alternative)")
	rangeCode := flag.String("range", "all", "analysis range (all, 5y, 3y, 1y, ytd, 1m)")
	benchmarkName := flag.String("benchmark", "", "workbook base name to treat as the scoring benchmark")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *outputDir == "" {
		*outputDir = cfg.Reports.Dir
	}

	ctx := context.Background()
	metrics := infrastructure.NewMetrics()
	products := services.NewProductServiceWithLogger(metrics, logger)
	analysis := services.NewAnalysisServiceWithLogger(products, metrics, logger)

	benchmarkID, err := loadWorkbooks(ctx, products, *inputDir, scoring.Category(*category), *benchmarkName)
	if err != nil {
		logger.Error("Failed to load workbooks", "error", err)
		os.Exit(1)
	}

	stamp := time.Now().UTC().Format("20060102")

	report, err := analysis.Analyze(ctx, nil, *rangeCode)
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	metricsPath := filepath.Join(*outputDir, fmt.Sprintf("nav_metrics_%s.csv", stamp))
	records := make([][]string, 0, len(report.Products))
	for _, p := range report.Products {
		records = append(records, exporter.MetricsRow(p.ProductID, p.Metrics))
	}
	if err := exporter.WriteFile(metricsPath, exporter.MetricsHeaders(), records); err != nil {
		logger.Error("Failed to write metrics report", "error", err)
		os.Exit(1)
	}

	if headers, rows := exporter.CorrelationTable(report.Correlations); headers != nil {
		correlationsPath := filepath.Join(*outputDir, fmt.Sprintf("nav_correlations_%s.csv", stamp))
		if err := exporter.WriteFile(correlationsPath, headers, rows); err != nil {
			logger.Error("Failed to write correlations report", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("Skipping correlations report, need two products with overlapping dates")
	}

	scores, err := analysis.Score(ctx, nil, benchmarkID)
	if err != nil {
		logger.Error("Scoring failed", "error", err)
		os.Exit(1)
	}

	scoringPath := filepath.Join(*outputDir, fmt.Sprintf("nav_scoring_%s.csv", stamp))
	rows := make([][]string, 0, len(scores.Results))
	for _, res := range scores.Results {
		rows = append(rows, exporter.ScoringRow(res))
	}
	if err := exporter.WriteFile(scoringPath, exporter.ScoringHeaders(), rows); err != nil {
		logger.Error("Failed to write scoring report", "error", err)
		os.Exit(1)
	}

	logger.Info("Reports written",
		"dir", *outputDir,
		"products", len(report.Products),
		"scored", len(scores.Results))
}

// loadWorkbooks uploads every xlsx in dir and returns the id of the product
// whose base name matches benchmarkName, if any.
func loadWorkbooks(ctx context.Context, products *services.ProductService, dir string, category scoring.Category, benchmarkName string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading input directory: %w", err)
	}

	var benchmarkID string
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xlsx") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		isBenchmark := benchmarkName != "" && name == benchmarkName

		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", entry.Name(), err)
		}
		product, err := products.Upload(ctx, name, category, scoring.Flags{}, isBenchmark, f)
		f.Close()
		if err != nil {
			slog.Warn("Skipping workbook", "file", entry.Name(), "error", err)
			continue
		}
		loaded++
		if isBenchmark {
			benchmarkID = product.ID
		}
	}

	if loaded == 0 {
		return "", fmt.Errorf("no usable workbooks in %s", dir)
	}
	if benchmarkName != "" && benchmarkID == "" {
		return "", fmt.Errorf("benchmark workbook %q not found", benchmarkName)
	}
	return benchmarkID, nil
}
