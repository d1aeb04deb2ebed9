package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/formsaas/pkg/verifier"
)

const namespace = "formsaas"

// Collector holds the registered metrics.
type Collector struct {
	verifications    *prometheus.CounterVec
	providerTimeouts *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

var _ verifier.Recorder = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Subscription verifications by outcome.",
		}, []string{"outcome"}),
		providerTimeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_timeouts_total",
			Help:      "Payment provider lookups that exceeded their budget.",
		}, []string{"step"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_latency_seconds",
			Help:      "Payment provider lookup latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		}, []string{"step"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.verifications,
		c.providerTimeouts,
		c.providerLatency,
		c.httpRequests,
		c.httpDuration,
	)
	return c
}

func (c *Collector) RecordOutcome(outcome verifier.Outcome) {
	c.verifications.WithLabelValues(string(outcome)).Inc()
}

func (c *Collector) RecordTimeout(step string) {
	c.providerTimeouts.WithLabelValues(step).Inc()
}

func (c *Collector) RecordLatency(step string, d time.Duration) {
	c.providerLatency.WithLabelValues(step).Observe(d.Seconds())
}

// Middleware records request counts and durations. Routes are labelled by
// their chi pattern so path parameters do not explode cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Handler serves the metrics in gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
