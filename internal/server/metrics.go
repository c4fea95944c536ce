package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

const metricsNamespace = "contact_extractor"

// Metrics holds the Prometheus collectors of one server. Collectors are
// registered on a registry the server owns, so several servers can live
// in one process (and in one test binary).
type Metrics struct {
	registry *prometheus.Registry

	crawlsTotal     *prometheus.CounterVec
	crawlDuration   prometheus.Histogram
	pagesScraped    prometheus.Histogram
	jobsInFlight    prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		crawlsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "crawls_total",
			Help:      "Total number of crawls by outcome.",
		}, []string{"status"}),
		crawlDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "crawl_duration_seconds",
			Help:      "Wall-clock duration of crawls.",
			Buckets:   []float64{1, 5, 10, 15, 30, 60, 120},
		}),
		pagesScraped: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "pages_scraped",
			Help:      "Pages fetched and extracted per crawl.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		jobsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "async_jobs_in_flight",
			Help:      "Async extraction jobs currently running.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.crawlsTotal,
		m.crawlDuration,
		m.pagesScraped,
		m.jobsInFlight,
		m.requestsTotal,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCrawl records one finished crawl.
func (m *Metrics) ObserveCrawl(r *model.AggregatedResult, d time.Duration) {
	status := "success"
	if r == nil || !r.Success {
		status = "failed"
	}
	m.crawlsTotal.WithLabelValues(status).Inc()
	m.crawlDuration.Observe(d.Seconds())
	if r != nil {
		m.pagesScraped.Observe(float64(r.PagesScraped))
	}
}

// ObserveRequest records one served HTTP request. route is the chi route
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
