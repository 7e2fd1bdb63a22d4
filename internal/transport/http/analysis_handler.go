package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/grx1242064203-bit/net-worth-analysis-tool/internal/errors"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/exporter"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/infrastructure"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/services"
	v1 "github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/api/v1"
)

// AnalysisHandler handles analysis, scoring and CSV export requests.
type AnalysisHandler struct {
	service  *services.AnalysisService
	logger   *slog.Logger
	validate *validator.Validate
	metrics  *infrastructure.Metrics
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(service *services.AnalysisService, metrics *infrastructure.Metrics, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "analysis_handler")),
		validate: validator.New(),
		metrics:  metrics,
	}
}

// Routes returns the analysis routes.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(render.SetContentType(render.ContentTypeJSON)).Post("/analysis", h.Analyze)
	r.With(render.SetContentType(render.ContentTypeJSON)).Post("/scoring", h.Score)
	r.Get("/export", h.Export)
	return r
}

// Analyze runs metrics and correlations over the selected products.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req v1.AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		renderError(w, r, validationError(err))
		return
	}

	report, err := h.service.Analyze(r.Context(), req.ProductIDs, req.Range)
	if err != nil {
		renderError(w, r, apierrors.FromService(err))
		return
	}
	render.JSON(w, r, report)
}

// Score runs the scoring engine over the selected products.
func (h *AnalysisHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req v1.ScoreRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		renderError(w, r, validationError(err))
		return
	}

	report, err := h.service.Score(r.Context(), req.ProductIDs, req.BenchmarkID)
	if err != nil {
		renderError(w, r, apierrors.FromService(err))
		return
	}
	render.JSON(w, r, report)
}

// Export streams one of the reports as a CSV download. The report is chosen
// by the "report" query parameter; selection parameters mirror the JSON
// endpoints.
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := v1.ExportRequest{
		Report:      q.Get("report"),
		Range:       q.Get("range"),
		BenchmarkID: q.Get("benchmark_id"),
		ProductIDs:  q["product_id"],
	}
	if err := h.validate.Struct(req); err != nil {
		renderError(w, r, validationError(err))
		return
	}

	var headers []string
	var records [][]string
	switch req.Report {
	case "metrics", "correlations":
		report, err := h.service.Analyze(r.Context(), req.ProductIDs, req.Range)
		if err != nil {
			renderError(w, r, apierrors.FromService(err))
			return
		}
		if req.Report == "metrics" {
			headers = exporter.MetricsHeaders()
			for _, p := range report.Products {
				records = append(records, exporter.MetricsRow(p.ProductID, p.Metrics))
			}
		} else {
			headers, records = exporter.CorrelationTable(report.Correlations)
			if headers == nil {
				renderError(w, r, apierrors.NewWithDetails(http.StatusNotFound, "NO_CORRELATIONS",
					"Correlation matrix requires at least two products with overlapping dates", nil))
				return
			}
		}
	case "scoring":
		report, err := h.service.Score(r.Context(), req.ProductIDs, req.BenchmarkID)
		if err != nil {
			renderError(w, r, apierrors.FromService(err))
			return
		}
		headers = exporter.ScoringHeaders()
		for _, res := range report.Results {
			records = append(records, exporter.ScoringRow(res))
		}
	}

	filename := fmt.Sprintf("nav_%s_%s.csv", req.Report, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := exporter.Write(w, exporter.WriteOptions{Headers: headers, Records: records, BOMPrefix: true}); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed", slog.String("error", err.Error()))
		return
	}
	if h.metrics != nil {
		h.metrics.ExportsTotal.Inc()
	}
}
