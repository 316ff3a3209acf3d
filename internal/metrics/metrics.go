package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes Prometheus collectors for the slicecfg server.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	presetsServed   *prometheus.CounterVec
	jobsBuilt       *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// MustNewMetrics registers the collectors with reg. A nil reg gets a fresh
// registry, so tests can build as many instances as they like.
func MustNewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "slicecfg",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route pattern, method and status code.",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "slicecfg",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route pattern.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		presetsServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "slicecfg",
				Name:      "presets_served_total",
				Help:      "Preset configurations rendered, by quality tier.",
			},
			[]string{"quality"},
		),
		jobsBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "slicecfg",
				Name:      "slice_jobs_total",
				Help:      "Slice job payloads built, by slicer engine.",
			},
			[]string{"slicer"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.requests, m.requestDuration, m.presetsServed, m.jobsBuilt)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// PresetServed counts a rendered preset.
func (m *Metrics) PresetServed(quality string) {
	if m == nil {
		return
	}
	m.presetsServed.WithLabelValues(quality).Inc()
}

// JobBuilt counts a slice job payload for the given engine wire name.
func (m *Metrics) JobBuilt(slicer string) {
	if m == nil {
		return
	}
	m.jobsBuilt.WithLabelValues(slicer).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
