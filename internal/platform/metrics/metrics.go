// Package metrics exposes Prometheus instruments for lesson generation,
// media side paths, content generation calls and HTTP traffic.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lumen-api/internal/generation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lesson generation outcomes.
const (
	OutcomeGenerated = "generated"
	OutcomeFallback  = "fallback"
	OutcomeFailed    = "failed"
)

// Metrics holds every instrument registered by the service.
type Metrics struct {
	registry *prometheus.Registry

	LessonGenerations  *prometheus.CounterVec
	MediaOutcomes      *prometheus.CounterVec
	ContentRequests    *prometheus.CounterVec
	ContentLatency     *prometheus.HistogramVec
	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

// New registers all instruments on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LessonGenerations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumen_lesson_generations_total",
				Help: "Lesson generation requests by outcome",
			},
			[]string{"operation", "outcome"},
		),
		MediaOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumen_media_generations_total",
				Help: "Audio and image side path results",
			},
			[]string{"kind", "outcome"},
		),
		ContentRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumen_content_requests_total",
				Help: "Calls to the content generation service",
			},
			[]string{"provider", "result"},
		),
		ContentLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lumen_content_request_duration_seconds",
				Help:    "Latency of content generation calls",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
			},
			[]string{"provider"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lumen_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lumen_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// LessonGeneration counts one orchestrator run.
func (m *Metrics) LessonGeneration(operation, outcome string) {
	m.LessonGenerations.WithLabelValues(operation, outcome).Inc()
}

// MediaOutcome counts one audio or image side path result.
func (m *Metrics) MediaOutcome(kind, outcome string) {
	m.MediaOutcomes.WithLabelValues(kind, outcome).Inc()
}

// InstrumentGenerator wraps gen so every call is counted and timed.
func (m *Metrics) InstrumentGenerator(provider string, gen generation.ContentGenerator) generation.ContentGenerator {
	return generation.GeneratorFunc(func(ctx context.Context, req generation.Request) (*generation.Response, error) {
		start := time.Now()
		resp, err := gen.Generate(ctx, req)
		m.ContentLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
		m.ContentRequests.WithLabelValues(provider, resultLabel(err)).Inc()
		return resp, err
	})
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, generation.ErrContentBlocked):
		return "blocked"
	case errors.Is(err, generation.ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, generation.ErrInvalidConfig):
		return "config"
	case errors.Is(err, generation.ErrTransientFailure):
		return "transient"
	default:
		return "error"
	}
}

// Middleware records request counts and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
