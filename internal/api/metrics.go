package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"building-catalog-service/internal/store"
)

// Registry is what Metrics needs from a Prometheus registry.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	gatherer        prometheus.Gatherer
	requestCounter  *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	catalogProducts prometheus.Gauge
	catalogFallback prometheus.Counter
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_http_requests_total",
				Help: "Total number of HTTP requests to the catalog service",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_http_request_duration_seconds",
				Help:    "Duration of catalog HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		catalogProducts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_products",
				Help: "Number of products in the loaded catalog",
			},
		),
		catalogFallback: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_load_fallback_total",
				Help: "Number of times the static fallback list replaced the configured source",
			},
		),
	}
	reg.MustRegister(m.requestCounter, m.requestLatency, m.catalogProducts, m.catalogFallback)
	return m
}

// ObserveLoad records the outcome of the catalog load.
func (m *Metrics) ObserveLoad(snap *store.Snapshot) {
	if snap == nil {
		return
	}
	m.catalogProducts.Set(float64(len(snap.Products)))
	if snap.Fallback() {
		m.catalogFallback.Inc()
	}
}

// Middleware wraps handlers with request count and latency metrics, labelled
// by the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.requestCounter.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
