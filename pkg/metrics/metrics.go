// Package metrics owns the prometheus collectors shared by the staybook services.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "staybook"

// Cache event labels.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheSet   = "set"
	CacheError = "error"
)

// Event publish results.
const (
	EventPublished = "published"
	EventFailed    = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPLatency      *prometheus.HistogramVec
	ExternalRequests *prometheus.CounterVec
	ExternalLatency  *prometheus.HistogramVec
	CacheEvents      *prometheus.CounterVec
	BookingsCreated  prometheus.Counter
	EventsPublished  *prometheus.CounterVec
	EventLatency     *prometheus.HistogramVec
}

// New builds a private registry so several instances can coexist in tests.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		ExternalRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound API requests."},
			[]string{"service", "endpoint", "status"},
		),
		ExternalLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "external_request_duration_seconds",
				Help:    "Outbound API request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "endpoint"},
		),
		CacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "listings_cache_events_total", Help: "Listings cache hits/misses/sets/errors."},
			[]string{"event"},
		),
		BookingsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "bookings_created_total", Help: "Bookings persisted."},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "kafka_messages_total", Help: "Kafka publish attempts by result."},
			[]string{"topic", "result"},
		),
		EventLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "kafka_publish_duration_seconds",
				Help:    "Kafka publish duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"topic"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequests, m.HTTPLatency,
		m.ExternalRequests, m.ExternalLatency,
		m.CacheEvents, m.BookingsCreated,
		m.EventsPublished, m.EventLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// The Observe helpers are safe on a nil *Metrics so callers can run with metrics disabled.

func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	m.ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func (m *Metrics) ObserveCache(event string) {
	if m == nil {
		return
	}
	m.CacheEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) ObserveEvent(topic string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	result := EventPublished
	if err != nil {
		result = EventFailed
	}
	m.EventsPublished.WithLabelValues(topic, result).Inc()
	m.EventLatency.WithLabelValues(topic).Observe(dur.Seconds())
}
