// Package metrics collects and exposes Prometheus metrics for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request-level metrics.
type Collector struct {
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hubapi_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hubapi_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.requests, c.latency)
	return c
}

// Middleware records every request's status code and latency.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		c.requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		c.latency.Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.status = code
		sw.written = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.written {
		sw.status = http.StatusOK
		sw.written = true
	}
	return sw.ResponseWriter.Write(b)
}
