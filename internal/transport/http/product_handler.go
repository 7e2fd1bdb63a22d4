package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/grx1242064203-bit/net-worth-analysis-tool/internal/errors"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/scoring"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/services"
	v1 "github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/api/v1"
)

// ProductHandler handles product upload and lifecycle requests.
type ProductHandler struct {
	service        *services.ProductService
	logger         *slog.Logger
	validate       *validator.Validate
	maxUploadBytes int64
	maxProducts    int
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *services.ProductService, logger *slog.Logger, maxUploadBytes int64, maxProducts int) *ProductHandler {
	return &ProductHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "product_handler")),
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
		maxProducts:    maxProducts,
	}
}

// Routes returns the product routes.
func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	return r
}

// Upload accepts a multipart form with a NAV workbook under "file" and the
// product attributes as form fields.
func (h *ProductHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if len(h.service.List(ctx)) >= h.maxProducts {
		renderError(w, r, apierrors.NewWithDetails(http.StatusConflict, "PRODUCT_LIMIT_REACHED",
			"Product limit reached", h.maxProducts))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		renderError(w, r, apierrors.ErrUploadTooLarge)
		return
	}

	req := v1.UploadProductRequest{
		Name:             r.FormValue("name"),
		Category:         r.FormValue("category"),
		Benchmark:        r.FormValue("benchmark") == "true",
		IndexEnhanced:    r.FormValue("index_enhanced") == "true",
		NeutralArbitrage: r.FormValue("neutral_arbitrage") == "true",
	}
	if err := h.validate.Struct(req); err != nil {
		renderError(w, r, validationError(err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		renderError(w, r, apierrors.ErrValidation("file", "A workbook file is required"))
		return
	}
	defer file.Close()

	flags := scoring.Flags{
		IndexEnhanced:    req.IndexEnhanced,
		NeutralArbitrage: req.NeutralArbitrage,
	}
	product, err := h.service.Upload(ctx, req.Name, scoring.Category(req.Category), flags, req.Benchmark, file)
	if err != nil {
		h.logger.WarnContext(ctx, "upload rejected", slog.String("name", req.Name), slog.String("error", err.Error()))
		renderError(w, r, apierrors.InvalidWorkbookError(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, product)
}

// List returns every stored product in upload order.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.service.List(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// Get returns one product by id.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, apierrors.FromService(err))
		return
	}
	render.JSON(w, r, product)
}

// Delete removes one product by id.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, apierrors.FromService(err))
		return
	}
	render.NoContent(w, r)
}
