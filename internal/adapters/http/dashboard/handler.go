// Package dashboard serves the Pokédex explorer pages and their charts.
package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/okian/pokedex/internal/adapters/http/api"
	"github.com/okian/pokedex/internal/domain/dataset"
	"github.com/okian/pokedex/internal/domain/views"
	"github.com/okian/pokedex/pkg/logger"
	"github.com/okian/pokedex/pkg/metrics"
)

// Default chart size in pixels.
const (
	DefaultChartWidth  = 900
	DefaultChartHeight = 480
)

// Dependencies required by the dashboard handlers.
type Dependencies interface {
	Dataset(ctx context.Context) *dataset.Dataset
	Combat(ctx context.Context) views.CombatView
	Geography(ctx context.Context, country string) (views.GeographyView, error)
}

// Handler renders the dashboard.
type Handler struct {
	deps   Dependencies
	tmpl   *template.Template
	width  int
	height int
	logger logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithChartSize sets the PNG size of every chart.
func WithChartSize(width, height int) Option {
	return func(h *Handler) {
		if width > 0 && height > 0 {
			h.width, h.height = width, height
		}
	}
}

// WithLogger sets a custom logger for the handler.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler parses the embedded templates and returns a dashboard handler.
func NewHandler(deps Dependencies, opts ...Option) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	h := &Handler{
		deps:   deps,
		tmpl:   tmpl,
		width:  DefaultChartWidth,
		height: DefaultChartHeight,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Register attaches the dashboard routes to mux.
//
//	GET /                              -> redirect to /dashboard
//	GET /dashboard?view=&country=      -> HTML page
//	GET /dashboard/charts/scatter.png  -> Ataque vs Defensa
//	GET /dashboard/charts/hp.png       -> HP histogram
//	GET /dashboard/charts/types.png    -> Tipo counts of ?country=
//	GET /dashboard/static/             -> embedded assets
//	GET /metrics                       -> Prometheus exposition
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", api.MetricsMiddleware(h.HandleRoot, "root"))
	mux.HandleFunc("/dashboard", api.MetricsMiddleware(h.HandleDashboard, "dashboard"))
	mux.HandleFunc("/dashboard/charts/scatter.png", api.MetricsMiddleware(h.HandleScatter, "chart_scatter"))
	mux.HandleFunc("/dashboard/charts/hp.png", api.MetricsMiddleware(h.HandleHP, "chart_hp"))
	mux.HandleFunc("/dashboard/charts/types.png", api.MetricsMiddleware(h.HandleTypes, "chart_types"))
	mux.Handle("/dashboard/static/", http.StripPrefix("/dashboard/static/", http.FileServer(FS())))
	mux.Handle("/metrics", api.NewMetricsHandler())
}

// HandleRoot redirects / to the dashboard; other unmatched paths are not found.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// HandleDashboard renders the selected view. An unknown view falls back to
// the first one.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	q := r.URL.Query()

	p, err := h.page(ctx, q.Get("view"), q.Get("country"))
	if err != nil {
		h.logger.Error(ctx, "dashboard view failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "dashboard.html.tmpl", p); err != nil {
		h.logger.Error(ctx, "dashboard template failed", logger.Error(fmt.Errorf("%w: %w", ErrTemplate, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// HandleScatter serves the attack/defense scatter.
func (h *Handler) HandleScatter(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, "scatter", func(ds *dataset.Dataset, out io.Writer) error {
		return Scatter(ds, h.width, h.height, out)
	})
}

// HandleHP serves the HP histogram.
func (h *Handler) HandleHP(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, "hp", func(ds *dataset.Dataset, out io.Writer) error {
		return HPHistogram(ds, h.width, h.height, out)
	})
}

// HandleTypes serves the Tipo histogram of the country named by ?country=.
// Countries absent from the dataset are not found.
func (h *Handler) HandleTypes(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	h.serveChart(w, r, "types", func(ds *dataset.Dataset, out io.Writer) error {
		col, ok := ds.CountryColumn()
		if !ok || !slices.Contains(ds.Distinct(col), country) {
			return ErrChartUnavailable
		}
		return TypeHistogram(ds, country, h.width, h.height, out)
	})
}

func (h *Handler) serveChart(w http.ResponseWriter, r *http.Request, name string, draw func(*dataset.Dataset, io.Writer) error) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	start := time.Now()
	var buf bytes.Buffer
	err := draw(h.deps.Dataset(ctx), &buf)
	if errors.Is(err, ErrChartUnavailable) {
		http.NotFound(w, r)
		return
	}
	metrics.RecordChartRender(name, float64(time.Since(start).Microseconds())/1000, err)
	if err != nil {
		h.logger.Error(ctx, "chart render failed", logger.String("chart", name), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) page(ctx context.Context, view, country string) (*Page, error) {
	if !slices.Contains(views.Labels, view) {
		view = views.Labels[0]
	}
	p := &Page{Title: PageTitle, Labels: views.Labels, View: view}

	switch view {
	case views.GeographyLabel:
		g, err := h.deps.Geography(ctx, country)
		if err != nil {
			return nil, fmt.Errorf("geography %q: %w", country, err)
		}
		p.Geography = &g
		if p.Choropleth, err = choropleth(g.Means); err != nil {
			return nil, err
		}
	default:
		c := h.deps.Combat(ctx)
		p.Combat = &c
	}
	return p, nil
}
