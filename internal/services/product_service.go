package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/infrastructure"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/ingest"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/scoring"
	"github.com/grx1242064203-bit/net-worth-analysis-tool/pkg/contracts/domain"
)

// Product is one uploaded NAV history plus its classification. Benchmark
// products supply the reference series for excess return and win rate and
// are not themselves scored.
type Product struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Category   scoring.Category `json:"category"`
	Flags      scoring.Flags    `json:"flags"`
	Benchmark  bool             `json:"benchmark"`
	Points     int              `json:"points"`
	FirstDate  time.Time        `json:"first_date"`
	LastDate   time.Time        `json:"last_date"`
	UploadedAt time.Time        `json:"uploaded_at"`

	Series domain.Series `json:"-"`
}

// ProductService owns the in-memory product store. All methods are safe for
// concurrent use.
type ProductService struct {
	mu       sync.RWMutex
	products map[string]*Product

	logger  *slog.Logger
	metrics *infrastructure.Metrics
	now     func() time.Time
}

// NewProductService creates a product service using the default logger.
func NewProductService(metrics *infrastructure.Metrics) *ProductService {
	return NewProductServiceWithLogger(metrics, slog.Default())
}

// NewProductServiceWithLogger creates a product service with a specific logger.
func NewProductServiceWithLogger(metrics *infrastructure.Metrics, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		products: make(map[string]*Product),
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Upload parses a NAV workbook and stores it under a fresh product id.
func (s *ProductService) Upload(ctx context.Context, name string, category scoring.Category, flags scoring.Flags, benchmark bool, r io.Reader) (*Product, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	series, err := ingest.ParseReader(r)
	if err != nil {
		if s.metrics != nil {
			s.metrics.UploadFailuresTotal.Inc()
		}
		return nil, fmt.Errorf("parsing workbook for %q: %w", name, err)
	}

	p := &Product{
		ID:         uuid.New().String(),
		Name:       name,
		Category:   category,
		Flags:      flags,
		Benchmark:  benchmark,
		Points:     len(series),
		FirstDate:  series.First().Date,
		LastDate:   series.Last().Date,
		UploadedAt: s.now(),
		Series:     series,
	}

	s.mu.Lock()
	s.products[p.ID] = p
	active := len(s.products)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.UploadsTotal.Inc()
		s.metrics.ProductsActive.Set(float64(active))
	}
	s.logger.InfoContext(ctx, "product uploaded",
		slog.String("product_id", p.ID),
		slog.String("name", name),
		slog.String("category", string(category)),
		slog.Bool("benchmark", benchmark),
		slog.Int("points", p.Points))
	return p, nil
}

// List returns all products sorted by upload time, earliest first.
func (s *ProductService) List(ctx context.Context) []*Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].UploadedAt.Equal(out[b].UploadedAt) {
			return out[a].ID < out[b].ID
		}
		return out[a].UploadedAt.Before(out[b].UploadedAt)
	})
	return out
}

// Get returns the product with the given id.
func (s *ProductService) Get(ctx context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return p, nil
}

// Delete removes the product with the given id.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	delete(s.products, id)
	if s.metrics != nil {
		s.metrics.ProductsActive.Set(float64(len(s.products)))
	}
	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

// seriesByID snapshots the series of the given products keyed by id.
func seriesByID(products []*Product) map[string]domain.Series {
	out := make(map[string]domain.Series, len(products))
	for _, p := range products {
		out[p.ID] = p.Series
	}
	return out
}
