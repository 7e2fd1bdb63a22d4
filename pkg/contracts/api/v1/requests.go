// Package api contains API contract definitions for the NAV analysis
// service. Version v1 represents the current stable API version.
package api

// UploadProductRequest carries the multipart form fields accompanying a NAV
// workbook upload.
type UploadProductRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	Category         string `json:"category" validate:"required,oneof=equity fixed_income alternative"`
	Benchmark        bool   `json:"benchmark"`
	IndexEnhanced    bool   `json:"index_enhanced"`
	NeutralArbitrage bool   `json:"neutral_arbitrage"`
}

// AnalyzeRequest selects the products and window for an analysis run. An
// empty product list means every stored product.
type AnalyzeRequest struct {
	ProductIDs []string `json:"product_ids" validate:"omitempty,dive,uuid4"`
	Range      string   `json:"range" validate:"omitempty,oneof=all 5y 3y 1y ytd 1m"`
}

// ScoreRequest selects the products and optional benchmark for a scoring
// run.
type ScoreRequest struct {
	ProductIDs  []string `json:"product_ids" validate:"omitempty,dive,uuid4"`
	BenchmarkID string   `json:"benchmark_id" validate:"omitempty,uuid4"`
}

// ExportRequest names the report to export as CSV.
type ExportRequest struct {
	Report      string   `json:"report" validate:"required,oneof=metrics correlations scoring"`
	ProductIDs  []string `json:"product_ids" validate:"omitempty,dive,uuid4"`
	Range       string   `json:"range" validate:"omitempty,oneof=all 5y 3y 1y ytd 1m"`
	BenchmarkID string   `json:"benchmark_id" validate:"omitempty,uuid4"`
}
