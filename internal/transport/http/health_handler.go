package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.Get)
	return r
}

// Get returns the liveness payload.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"version": contracts.Version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
