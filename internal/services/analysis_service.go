package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/analytics"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/infrastructure"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/scoring"
)

// analysisConcurrency caps the per-product metric computations running in
// parallel during one analysis request.
const analysisConcurrency = 4

// ProductAnalysis pairs a product with its computed metrics. Metrics is nil
// when the product had fewer than two observations inside the window.
type ProductAnalysis struct {
	ProductID string             `json:"product_id"`
	Name      string             `json:"name"`
	Metrics   *analytics.Metrics `json:"metrics"`
}

// AnalysisReport is the outcome of one analysis run over a product set.
type AnalysisReport struct {
	Range        string                       `json:"range"`
	Window       analytics.Window             `json:"window"`
	Products     []ProductAnalysis            `json:"products"`
	Correlations *analytics.CorrelationMatrix `json:"correlations,omitempty"`
	GeneratedAt  time.Time                    `json:"generated_at"`
}

// ScoringReport is the outcome of one scoring run.
type ScoringReport struct {
	BenchmarkID string            `json:"benchmark_id,omitempty"`
	Results     []*scoring.Result `json:"results"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// AnalysisService computes metrics, correlations and scores over the
// products held by a ProductService.
type AnalysisService struct {
	products *ProductService
	logger   *slog.Logger
	metrics  *infrastructure.Metrics
	now      func() time.Time
}

// NewAnalysisService creates an analysis service using the default logger.
func NewAnalysisService(products *ProductService, metrics *infrastructure.Metrics) *AnalysisService {
	return NewAnalysisServiceWithLogger(products, metrics, slog.Default())
}

// NewAnalysisServiceWithLogger creates an analysis service with a specific logger.
func NewAnalysisServiceWithLogger(products *ProductService, metrics *infrastructure.Metrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		products: products,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// ResolveRange translates a range code into an analysis window anchored at
// now. The zero window means the full history.
func ResolveRange(code string, now time.Time) (analytics.Window, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", "all":
		return analytics.Window{}, nil
	case "5y":
		return analytics.Window{Start: now.AddDate(-5, 0, 0)}, nil
	case "3y":
		return analytics.Window{Start: now.AddDate(-3, 0, 0)}, nil
	case "1y":
		return analytics.Window{Start: now.AddDate(-1, 0, 0)}, nil
	case "ytd":
		return analytics.Window{Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)}, nil
	case "1m":
		return analytics.Window{Start: now.AddDate(0, -1, 0)}, nil
	}
	return analytics.Window{}, fmt.Errorf("%w: %q", ErrInvalidRange, code)
}

// Analyze computes the metrics record for each selected product and the
// correlation matrix over the selection. An empty id list selects every
// stored product. Products with too little history stay in the report with
// a nil metrics record.
func (s *AnalysisService) Analyze(ctx context.Context, productIDs []string, rangeCode string) (*AnalysisReport, error) {
	window, err := ResolveRange(rangeCode, s.now())
	if err != nil {
		return nil, err
	}

	selected, err := s.resolveSelection(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	report := &AnalysisReport{
		Range:       rangeCode,
		Window:      window,
		Products:    make([]ProductAnalysis, len(selected)),
		GeneratedAt: s.now(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(analysisConcurrency)
	for i, p := range selected {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Products[i] = ProductAnalysis{
				ProductID: p.ID,
				Name:      p.Name,
				Metrics:   analytics.Compute(p.Series, window),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]string, len(selected))
	for i, p := range selected {
		ids[i] = p.ID
	}
	report.Correlations = analytics.Correlate(ids, seriesByID(selected))

	if s.metrics != nil {
		s.metrics.AnalysesTotal.Inc()
	}
	s.logger.InfoContext(ctx, "analysis completed",
		slog.Int("products", len(selected)),
		slog.String("range", rangeCode),
		slog.Bool("correlations", report.Correlations != nil))
	return report, nil
}

// Score rates every selected non-benchmark product against its category's
// standards. When benchmarkID is set, that product's series feeds the excess
// return and monthly win rate; the consistency peer group is the selection
// itself. Metrics for scoring are always computed on the full history.
func (s *AnalysisService) Score(ctx context.Context, productIDs []string, benchmarkID string) (*ScoringReport, error) {
	selected, err := s.resolveSelection(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	var benchmark *Product
	if benchmarkID != "" {
		benchmark, err = s.products.Get(ctx, benchmarkID)
		if err != nil {
			return nil, err
		}
	}

	candidates := make([]*Product, 0, len(selected))
	for _, p := range selected {
		if !p.Benchmark {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoProducts
	}

	// Peer groups share a category; benchmarks never join one.
	peersByCategory := make(map[scoring.Category][]string)
	for _, p := range candidates {
		peersByCategory[p.Category] = append(peersByCategory[p.Category], p.ID)
	}
	series := seriesByID(candidates)

	report := &ScoringReport{
		BenchmarkID: benchmarkID,
		Results:     make([]*scoring.Result, 0, len(candidates)),
		GeneratedAt: s.now(),
	}
	for _, p := range candidates {
		in := scoring.Inputs{
			Metrics:        analytics.Compute(p.Series, analytics.Window{}),
			ExcessReturn:   analytics.Unavailable(),
			MonthlyWinRate: analytics.Unavailable(),
			Consistency:    analytics.Consistency(p.ID, peersByCategory[p.Category], series),
		}
		if benchmark != nil {
			in.ExcessReturn = analytics.ExcessReturn(p.Series, benchmark.Series)
			in.MonthlyWinRate = analytics.MonthlyWinRate(p.Series, benchmark.Series)
		}

		result, err := scoring.Score(p.ID, p.Category, p.Flags, in)
		if err != nil {
			return nil, fmt.Errorf("scoring product %s: %w", p.ID, err)
		}
		report.Results = append(report.Results, result)
	}

	if s.metrics != nil {
		s.metrics.ScoringsTotal.Inc()
	}
	s.logger.InfoContext(ctx, "scoring completed",
		slog.Int("products", len(report.Results)),
		slog.String("benchmark_id", benchmarkID))
	return report, nil
}

// resolveSelection resolves the requested ids, or every stored product when the list
// is empty. Order follows the request; the full listing is upload-ordered.
func (s *AnalysisService) resolveSelection(ctx context.Context, productIDs []string) ([]*Product, error) {
	if len(productIDs) == 0 {
		all := s.products.List(ctx)
		if len(all) == 0 {
			return nil, ErrNoProducts
		}
		return all, nil
	}
	out := make([]*Product, 0, len(productIDs))
	for _, id := range productIDs {
		p, err := s.products.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
