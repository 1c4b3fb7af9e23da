package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and
// the staffing workflow.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	submissionsBlocked   prometheus.Counter
	requestsCreated      prometheus.Counter
	formsRegistered      prometheus.Counter
	notificationsEmitted prometheus.Counter
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	submissionsBlocked := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "workflow_submissions_blocked_total",
		Help: "Request submissions blocked for missing staffing evidence",
	})

	requestsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "workflow_requests_created_total",
		Help: "Requests created through the gated submission path",
	})

	formsRegistered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "workflow_forms_registered_total",
		Help: "Helper forms registered by directors",
	})

	notificationsEmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "workflow_notifications_emitted_total",
		Help: "Notifications emitted by the staffing quota evaluator",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, submissionsBlocked, requestsCreated,
		formsRegistered, notificationsEmitted, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:             registry,
		handler:              promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:      requestDuration,
		requestTotal:         requestTotal,
		submissionsBlocked:   submissionsBlocked,
		requestsCreated:      requestsCreated,
		formsRegistered:      formsRegistered,
		notificationsEmitted: notificationsEmitted,
		cacheHits:            cacheHits,
		cacheMisses:          cacheMisses,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	if s == nil {
		return promhttp.Handler()
	}
	return s.handler
}

// ObserveHTTPRequest records latency and volume for an HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordSubmissionBlocked counts a gated submission that did not create a
// request.
func (s *MetricsService) RecordSubmissionBlocked() {
	if s != nil {
		s.submissionsBlocked.Inc()
	}
}

// RecordRequestCreated counts a successful request submission.
func (s *MetricsService) RecordRequestCreated() {
	if s != nil {
		s.requestsCreated.Inc()
	}
}

// RecordFormRegistered counts a helper form registration.
func (s *MetricsService) RecordFormRegistered() {
	if s != nil {
		s.formsRegistered.Inc()
	}
}

// RecordNotificationEmitted counts a quota evaluator notification.
func (s *MetricsService) RecordNotificationEmitted() {
	if s != nil {
		s.notificationsEmitted.Inc()
	}
}

// RecordCacheLookup counts a cache hit or miss.
func (s *MetricsService) RecordCacheLookup(hit bool) {
	if s == nil {
		return
	}
	if hit {
		s.cacheHits.Inc()
	} else {
		s.cacheMisses.Inc()
	}
}
